package speech

// lines.go centralises every spoken string. Keep lines short and direct;
// the TTS engine handles inflection.

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/hammamikhairi/forkify/internal/domain"
)

// ── Global ───────────────────────────────────────────────────────

func LineWelcome() string {
	return "Hello. What would you like to cook?"
}

func LineBye() string {
	return "Bye."
}

func LineUnknown(input string) string {
	return fmt.Sprintf("Didn't catch that: %s.", input)
}

// ── Search ───────────────────────────────────────────────────────

func LineResults(query string, total int) string {
	switch total {
	case 0:
		return fmt.Sprintf("No recipes found for %s.", query)
	case 1:
		return fmt.Sprintf("One recipe for %s.", query)
	default:
		return fmt.Sprintf("%d recipes for %s.", total, query)
	}
}

// ── Recipe ───────────────────────────────────────────────────────

// LineRecipe reads out the title, serving count and every ingredient.
func LineRecipe(r *domain.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, by %s. Serves %d, about %d minutes. You'll need: ", r.Title, r.Author, r.Servings, r.TimeMinutes)
	for i, ing := range r.Ingredients {
		if i > 0 && i == len(r.Ingredients)-1 {
			b.WriteString(", and ")
		} else if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(LineIngredient(ing))
	}
	b.WriteString(".")
	return b.String()
}

// LineIngredient speaks one ingredient: "4 and a half cups flour".
func LineIngredient(ing domain.ParsedIngredient) string {
	var parts []string
	plural := true
	if ing.Quantity.Valid {
		parts = append(parts, SpokenQuantity(ing.Quantity.Value))
		plural = ing.Quantity.Value > 1
	}
	if ing.Unit != "" {
		parts = append(parts, spokenUnit(ing.Unit, plural))
	}
	parts = append(parts, ing.Name)
	return strings.Join(parts, " ")
}

func LineServings(n int) string {
	if n == 1 {
		return "Serves one."
	}
	return fmt.Sprintf("Serves %d.", n)
}

func LineServingsFloor() string {
	return "That's already one serving."
}

func LineNoRecipe() string {
	return "Open a recipe first."
}

// ── List / favorites ─────────────────────────────────────────────

func LineAddedToList(n int) string {
	return fmt.Sprintf("Added %d items to your shopping list.", n)
}

func LineLiked(title string, liked bool) string {
	if liked {
		return fmt.Sprintf("Saved %s to your favorites.", title)
	}
	return fmt.Sprintf("Removed %s from your favorites.", title)
}

var acks = []string{
	"Got it.",
	"Done.",
	"Okay.",
	"Sure.",
}

// LineAck returns a short random acknowledgment.
func LineAck() string {
	return acks[rand.Intn(len(acks))]
}

// ── Helpers ──────────────────────────────────────────────────────

var spokenUnits = map[string][2]string{
	"tbsp":  {"tablespoon", "tablespoons"},
	"tsp":   {"teaspoon", "teaspoons"},
	"oz":    {"ounce", "ounces"},
	"cup":   {"cup", "cups"},
	"pound": {"pound", "pounds"},
	"kg":    {"kilogram", "kilograms"},
	"g":     {"gram", "grams"},
}

func spokenUnit(unit string, plural bool) string {
	forms, ok := spokenUnits[unit]
	if !ok {
		return unit
	}
	if plural {
		return forms[1]
	}
	return forms[0]
}

var spokenFractions = []struct {
	value float64
	alone string // no whole part
	after string // following a whole number
}{
	{0.25, "a quarter", "and a quarter"},
	{1.0 / 3, "a third", "and a third"},
	{0.5, "half a", "and a half"},
	{2.0 / 3, "two thirds", "and two thirds"},
	{0.75, "three quarters", "and three quarters"},
}

// SpokenQuantity renders an amount the way a person would say it.
func SpokenQuantity(v float64) string {
	whole := math.Floor(v)
	frac := v - whole
	if frac < 0.01 || frac > 0.99 {
		return fmt.Sprintf("%d", int(math.Round(v)))
	}
	for _, f := range spokenFractions {
		if math.Abs(frac-f.value) < 0.01 {
			if whole == 0 {
				return f.alone
			}
			return fmt.Sprintf("%d %s", int(whole), f.after)
		}
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
