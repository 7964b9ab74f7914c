// Package ingredient turns free-form recipe ingredient lines into structured
// quantity/unit/name triples and rescales them between serving sizes.
package ingredient

import "strings"

// Substitution maps a long unit spelling to its canonical short form.
type Substitution struct {
	Long  string
	Short string
}

// substitutions is applied in order. Plurals come before their singular so
// the longer spelling is consumed first.
var substitutions = []Substitution{
	{"tablespoons", "tbsp"},
	{"tablespoon", "tbsp"},
	{"ounces", "oz"},
	{"ounce", "oz"},
	{"teaspoons", "tsp"},
	{"teaspoon", "tsp"},
	{"cups", "cup"},
	{"pounds", "pound"},
}

// metricUnits have no long-form spelling.
var metricUnits = []string{"kg", "g"}

var canonical = buildCanonical()

func buildCanonical() map[string]struct{} {
	set := make(map[string]struct{}, len(substitutions)+len(metricUnits))
	for _, s := range substitutions {
		set[s.Short] = struct{}{}
	}
	for _, u := range metricUnits {
		set[u] = struct{}{}
	}
	return set
}

// Substitutions returns a copy of the ordered long-to-short table.
func Substitutions() []Substitution {
	out := make([]Substitution, len(substitutions))
	copy(out, substitutions)
	return out
}

// Units returns the canonical short unit tokens in table order, metric last.
func Units() []string {
	seen := make(map[string]struct{}, len(canonical))
	out := make([]string, 0, len(canonical))
	for _, s := range substitutions {
		if _, ok := seen[s.Short]; ok {
			continue
		}
		seen[s.Short] = struct{}{}
		out = append(out, s.Short)
	}
	return append(out, metricUnits...)
}

// IsUnit reports whether token is exactly a canonical unit.
func IsUnit(token string) bool {
	_, ok := canonical[token]
	return ok
}

// NormalizeUnits replaces every occurrence of each long spelling with its
// short form, in table order. The input is expected to be lower-cased.
func NormalizeUnits(line string) string {
	for _, s := range substitutions {
		line = strings.ReplaceAll(line, s.Long, s.Short)
	}
	return line
}
