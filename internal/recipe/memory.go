// Package recipe provides recipe source implementations.
package recipe

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*MemorySource)(nil)

// DefaultSimilarity is the minimum Levenshtein similarity between a query
// word and a title word for a fuzzy hit.
const DefaultSimilarity = 0.75

// MemorySource holds raw recipes in memory. Used offline and in tests.
// Safe for concurrent access.
type MemorySource struct {
	mu        sync.RWMutex
	order     []string
	recipes   map[string]domain.RawRecipe
	threshold float64
	log       *logger.Logger
}

// NewMemorySource creates a recipe source preloaded with built-in recipes.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := NewEmptyMemorySource(log)
	src.seed()
	return src
}

// NewEmptyMemorySource creates a recipe source with nothing in it.
func NewEmptyMemorySource(log *logger.Logger) *MemorySource {
	return &MemorySource{
		recipes:   make(map[string]domain.RawRecipe),
		threshold: DefaultSimilarity,
		log:       log,
	}
}

// Put adds a recipe, replacing any recipe with the same ID.
func (s *MemorySource) Put(r domain.RawRecipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.recipes[r.ID] = r
}

// Get returns a copy of the recipe with the given ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.RawRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, fmt.Errorf("recipe %q: %w", id, domain.ErrNotFound)
	}
	r.Ingredients = append([]string(nil), r.Ingredients...)
	return &r, nil
}

// Search returns recipes whose title or publisher contains the query, or
// whose title has a word close enough to a query word. Results keep the
// order recipes were added in.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching recipes for: %s", q)
	if q == "" {
		return nil, nil
	}

	var out []domain.RecipeSummary
	for _, id := range s.order {
		r := s.recipes[id]
		if s.matches(r, q) {
			out = append(out, domain.RecipeSummary{
				ID:        r.ID,
				Title:     r.Title,
				Publisher: r.Publisher,
				ImageURL:  r.ImageURL,
			})
		}
	}
	s.log.Debug("search %q: %d hits", q, len(out))
	return out, nil
}

func (s *MemorySource) matches(r domain.RawRecipe, query string) bool {
	title := strings.ToLower(r.Title)
	if strings.Contains(title, query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Publisher), query) {
		return true
	}
	for _, qw := range strings.Fields(query) {
		for _, tw := range strings.Fields(title) {
			if similarity(qw, tw) >= s.threshold {
				return true
			}
		}
	}
	return false
}

// similarity returns 1 - distance/max(len(a), len(b)), in runes.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// seed populates the source with built-in recipes. Ingredient lines are kept
// exactly as a recipe site would publish them.
func (s *MemorySource) seed() {
	recipes := []domain.RawRecipe{
		{
			ID:        "47746",
			Title:     "Best Pizza Dough Ever",
			Publisher: "101 Cookbooks",
			ImageURL:  "http://static.food2fork.com/best_pizza_dough_recipe1b20.jpg",
			SourceURL: "http://www.101cookbooks.com/archives/001199.html",
			Ingredients: []string{
				"4 1/2 cups (20.25 ounces) unbleached high-gluten, bread, or all-purpose flour, chilled",
				"1 3/4 teaspoons salt",
				"1 teaspoon instant yeast",
				"1/4 cup olive oil (optional)",
				"1 3/4 cups water, ice cold (40F)",
				"Semolina flour OR cornmeal for dusting",
			},
		},
		{
			ID:        "35382",
			Title:     "Jalapeno Popper Grilled Cheese Sandwich",
			Publisher: "Closet Cooking",
			ImageURL:  "http://static.food2fork.com/Jalapeno2BPopper2BGrilled2BCheese2BSandwich2B12B500fd186186.jpg",
			SourceURL: "http://www.closetcooking.com/2011/04/jalapeno-popper-grilled-cheese-sandwich.html",
			Ingredients: []string{
				"2 jalapeno peppers, cut in half lengthwise and seeded",
				"2 slices sour dough bread",
				"1 tablespoon butter, room temperature",
				"2 tablespoons cream cheese, room temperature",
				"1/2 cup jack and cheddar cheese, shredded",
				"1 tablespoon tortilla chips, crumbled",
			},
		},
		{
			ID:        "54388",
			Title:     "Bacon Double Cheese Burger Dip",
			Publisher: "Closet Cooking",
			ImageURL:  "http://static.food2fork.com/Bacon2BDouble2BCheese2BBurger2BDip2B5002B3000c8a1c5a.jpg",
			SourceURL: "http://www.closetcooking.com/2012/01/bacon-double-cheese-burger-dip.html",
			Ingredients: []string{
				"4 slices bacon, cut into 1 inch pieces",
				"1/2 pound ground beef",
				"1 (8 ounce) package cream cheese, room temperature",
				"1/2 cup sour cream",
				"1/4 cup mayonnaise",
				"1 cup cheddar cheese, shredded",
				"1 tablespoon ketchup",
				"1 tablespoon mustard",
				"salt and pepper to taste",
			},
		},
		{
			ID:        "2ec050",
			Title:     "Chicken Tikka Masala",
			Publisher: "The Pioneer Woman",
			ImageURL:  "http://static.food2fork.com/chickentikkamasala3c6e.jpg",
			SourceURL: "http://thepioneerwoman.com/cooking/chicken-tikka-masala/",
			Ingredients: []string{
				"2 pounds boneless skinless chicken thighs",
				"1 cup plain yogurt",
				"2 tablespoons lemon juice",
				"2 teaspoons ground cumin",
				"1 teaspoon ground cinnamon",
				"2 teaspoons cayenne pepper",
				"1 tablespoon minced fresh ginger",
				"4 Tablespoons butter",
				"1 whole onion, finely diced",
				"1-1/2 teaspoon salt",
				"1 can (15 ounce) tomato sauce",
				"1 cup heavy cream",
				"Fresh cilantro, chopped",
			},
		},
		{
			ID:        "8c0c3a",
			Title:     "Spaghetti Carbonara",
			Publisher: "Simply Recipes",
			ImageURL:  "http://static.food2fork.com/carbonara8a3c.jpg",
			SourceURL: "http://www.simplyrecipes.com/recipes/spaghetti_alla_carbonara/",
			Ingredients: []string{
				"250 g spaghetti",
				"3 eggs",
				"1 cup freshly grated parmesan",
				"4 ounces pancetta, cubed",
				"2 cloves garlic, minced",
				"Black pepper",
			},
		},
		{
			ID:        "a723e8",
			Title:     "Roasted Potato Salad",
			Publisher: "BBC Good Food",
			ImageURL:  "http://static.food2fork.com/potatosalad4f1e.jpg",
			SourceURL: "http://www.bbcgoodfood.com/recipes/roasted-potato-salad",
			Ingredients: []string{
				"1 kg new potatoes, halved",
				"3 tbsp olive oil",
				"1 red onion, thinly sliced",
				"2 tablespoons red wine vinegar",
				"1 tsp dijon mustard",
				"a small bunch of chives, snipped",
			},
		},
		{
			ID:        "f1b8d2",
			Title:     "Buttermilk Pancakes",
			Publisher: "All Recipes",
			ImageURL:  "http://static.food2fork.com/pancakes7e2f.jpg",
			SourceURL: "http://allrecipes.com/recipe/buttermilk-pancakes/",
			Ingredients: []string{
				"3 cups all-purpose flour",
				"3 tablespoons white sugar",
				"3 teaspoons baking powder",
				"1 1/2 teaspoons baking soda",
				"3/4 teaspoon salt",
				"3 cups buttermilk",
				"1/2 cup milk",
				"3 eggs",
				"1/3 cup butter, melted",
			},
		},
		{
			ID:        "c9e4a0",
			Title:     "Pizza Margherita",
			Publisher: "Two Peas and Their Pod",
			ImageURL:  "http://static.food2fork.com/margherita2b5a.jpg",
			SourceURL: "http://www.twopeasandtheirpod.com/pizza-margherita/",
			Ingredients: []string{
				"1 pound pizza dough",
				"1/2 cup tomato sauce",
				"8 ounces fresh mozzarella, sliced",
				"Fresh basil leaves",
				"2 teaspoons olive oil",
			},
		},
	}
	for _, r := range recipes {
		s.order = append(s.order, r.ID)
		s.recipes[r.ID] = r
	}
	s.log.Debug("seeded %d recipes", len(recipes))
}
