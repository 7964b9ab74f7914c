package ingredient

import (
	"errors"
	"regexp"
	"strings"

	"github.com/hammamikhairi/forkify/internal/domain"
)

// parenthetical matches a bracketed aside and the spaces around it.
var parenthetical = regexp.MustCompile(` *\([^)]*\) *`)

// Normalize lower-cases a raw ingredient line, shortens unit spellings and
// replaces every parenthesised span with a single space.
func Normalize(raw string) string {
	line := strings.ToLower(raw)
	line = NormalizeUnits(line)
	return parenthetical.ReplaceAllString(line, " ")
}

// Parse splits one raw ingredient line into quantity, unit and name. It never
// fails: text it cannot make sense of becomes a quantity of 1 with the whole
// normalized line as the name.
func Parse(raw string) domain.ParsedIngredient {
	line := Normalize(raw)
	tokens := strings.Fields(line)
	fallback := domain.ParsedIngredient{
		Quantity: domain.Amount(1),
		Name:     strings.Join(tokens, " "),
	}
	if fallback.Name == "" {
		// nothing but asides, keep them rather than lose the line
		fallback.Name = strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	}
	if len(tokens) == 0 {
		return fallback
	}

	if i := unitIndex(tokens); i >= 0 {
		parsed := domain.ParsedIngredient{
			Unit: tokens[i],
			Name: strings.Join(tokens[i+1:], " "),
		}
		v, err := EvaluateQuantity(tokens[:i])
		switch {
		case err == nil:
			parsed.Quantity = domain.Amount(v)
		case errors.Is(err, ErrNoQuantity):
			// unit leads the line: keep it, amount unknown
		default:
			return fallback
		}
		if parsed.Name == "" {
			return fallback
		}
		return parsed
	}

	// no unit: a numeric first token ("3", "1/2", "1-1/2", "1.5") is the amount
	if len(tokens) > 1 {
		if v, err := EvaluateQuantity(tokens[:1]); err == nil {
			return domain.ParsedIngredient{
				Quantity: domain.Amount(v),
				Name:     strings.Join(tokens[1:], " "),
			}
		}
	}

	return fallback
}

// ParseAll parses every non-blank line, preserving order.
func ParseAll(lines []string) []domain.ParsedIngredient {
	out := make([]domain.ParsedIngredient, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, Parse(l))
	}
	return out
}

func unitIndex(tokens []string) int {
	for i, t := range tokens {
		if IsUnit(t) {
			return i
		}
	}
	return -1
}
