package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/forkify/internal/domain"
)

// ResultLines numbers a page of search results from 1; the numbers are what
// the user types to open a result.
func ResultLines(results []domain.RecipeSummary) []string {
	out := make([]string, 0, len(results))
	for i, r := range results {
		out = append(out, fmt.Sprintf("%2d. %s  (%s)", i+1, limitTitle(r.Title, 40), r.Publisher))
	}
	return out
}

// limitTitle shortens a title to at most limit characters, cutting at a word
// boundary and adding an ellipsis.
func limitTitle(title string, limit int) string {
	if len(title) <= limit {
		return title
	}
	var b strings.Builder
	for _, w := range strings.Fields(title) {
		if b.Len()+len(w) > limit {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	if b.Len() == 0 {
		// first word alone is too long
		first := []rune(strings.Fields(title)[0])
		if len(first) > limit {
			first = first[:limit]
		}
		return string(first) + "..."
	}
	return b.String() + " ..."
}

// IngredientLine renders one ingredient as "4 1/2 cup flour".
func IngredientLine(q domain.Quantity, unit, name string) string {
	parts := make([]string, 0, 3)
	if s := FormatQuantity(q); s != "" {
		parts = append(parts, s)
	}
	if unit != "" {
		parts = append(parts, unit)
	}
	parts = append(parts, name)
	return strings.Join(parts, " ")
}

// RecipeLines renders the ingredient list of a recipe.
func RecipeLines(r *domain.Recipe) []string {
	out := make([]string, 0, len(r.Ingredients)+2)
	out = append(out, fmt.Sprintf("by %s  |  %d min  |  serves %d", r.Author, r.TimeMinutes, r.Servings))
	for _, ing := range r.Ingredients {
		out = append(out, "• "+IngredientLine(ing.Quantity, ing.Unit, ing.Name))
	}
	if r.SourceURL != "" {
		out = append(out, "directions: "+r.SourceURL)
	}
	return out
}

// ListLines renders the shopping list with short handles usable in
// remove/set commands.
func ListLines(entries []domain.ListEntry) []string {
	out := make([]string, 0, len(entries))
	for i, e := range entries {
		out = append(out, fmt.Sprintf("%2d. %s", i+1, IngredientLine(e.Quantity, e.Unit, e.Name)))
	}
	return out
}

// FavoriteLines renders the favorites.
func FavoriteLines(entries []domain.FavoriteEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("♥ %s  (%s)  [open %s]", limitTitle(e.Title, 40), e.Author, e.ID))
	}
	return out
}

// FormatQuantity renders a quantity as a whole number plus a common
// fraction when it is close to one ("4 1/2", "3/4"), otherwise with up to
// two decimals. Unknown quantities render empty.
func FormatQuantity(q domain.Quantity) string {
	if !q.Valid {
		return ""
	}
	whole := int(q.Value)
	frac := q.Value - float64(whole)
	if frac < 0.01 {
		return fmt.Sprintf("%d", whole)
	}
	if frac > 0.99 {
		return fmt.Sprintf("%d", whole+1)
	}

	for _, f := range commonFractions {
		if abs(frac-f.value) < 0.01 {
			if whole == 0 {
				return f.text
			}
			return fmt.Sprintf("%d %s", whole, f.text)
		}
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", q.Value), "0"), ".")
}

var commonFractions = []struct {
	value float64
	text  string
}{
	{1.0 / 8, "1/8"},
	{1.0 / 4, "1/4"},
	{1.0 / 3, "1/3"},
	{3.0 / 8, "3/8"},
	{1.0 / 2, "1/2"},
	{5.0 / 8, "5/8"},
	{2.0 / 3, "2/3"},
	{3.0 / 4, "3/4"},
	{7.0 / 8, "7/8"},
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
