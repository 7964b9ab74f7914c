package ingredient

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoQuantity means there were no tokens to evaluate.
	ErrNoQuantity = errors.New("no quantity")
	// ErrMalformedQuantity means a token was not an integer, decimal or fraction.
	ErrMalformedQuantity = errors.New("malformed quantity")
)

// EvaluateQuantity sums the tokens preceding a unit. Every token is an
// additive term: "4 1/2" is 4.5. A hyphen in the first token separates a
// whole number from a fraction ("4-1/2" is also 4.5); anywhere else a hyphen
// is malformed. Only non-negative integers, decimals and n/d fractions are
// accepted.
func EvaluateQuantity(tokens []string) (float64, error) {
	if len(tokens) == 0 {
		return 0, ErrNoQuantity
	}

	terms := make([]string, len(tokens))
	copy(terms, tokens)
	terms[0] = strings.Replace(terms[0], "-", "+", 1)

	var sum float64
	for _, term := range strings.Split(strings.Join(terms, "+"), "+") {
		v, err := evalTerm(term)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func evalTerm(term string) (float64, error) {
	num, den, isFraction := strings.Cut(term, "/")
	if !isFraction {
		return parseNumber(term)
	}
	n, err := parseNumber(num)
	if err != nil {
		return 0, err
	}
	d, err := parseNumber(den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("%w: zero denominator in %q", ErrMalformedQuantity, term)
	}
	return n / d, nil
}

// parseNumber accepts digits with at most one decimal point. Signs,
// exponents, hex and the like are rejected even though strconv would take them.
func parseNumber(s string) (float64, error) {
	if s == "" || s == "." {
		return 0, fmt.Errorf("%w: empty term", ErrMalformedQuantity)
	}
	dots := 0
	for _, c := range s {
		switch {
		case c == '.':
			dots++
		case c < '0' || c > '9':
			return 0, fmt.Errorf("%w: %q", ErrMalformedQuantity, s)
		}
	}
	if dots > 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedQuantity, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedQuantity, s)
	}
	return v, nil
}
