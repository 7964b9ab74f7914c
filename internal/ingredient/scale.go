package ingredient

import (
	"fmt"

	"github.com/hammamikhairi/forkify/internal/domain"
)

// Rescale returns a copy of ingredients with every known quantity multiplied
// by to/from. Unknown quantities stay unknown. Both serving counts must be
// positive; the input slice is left untouched.
func Rescale(ingredients []domain.ParsedIngredient, from, to int) ([]domain.ParsedIngredient, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("rescale %d -> %d: %w", from, to, domain.ErrInvalidServings)
	}

	factor := float64(to) / float64(from)
	out := make([]domain.ParsedIngredient, len(ingredients))
	for i, ing := range ingredients {
		out[i] = ing
		if ing.Quantity.Valid {
			out[i].Quantity.Value = ing.Quantity.Value * factor
		}
	}
	return out, nil
}
