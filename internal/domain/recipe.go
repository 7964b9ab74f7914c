// Package domain defines the core types and interfaces for the recipe assistant.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"math"
	"strconv"
)

// DefaultServings is the serving count every recipe starts with. The recipe
// source does not report one.
const DefaultServings = 4

// RawRecipe is a recipe exactly as the recipe source returns it.
type RawRecipe struct {
	ID          string
	Title       string
	Publisher   string
	ImageURL    string
	SourceURL   string
	Ingredients []string
}

// RecipeSummary is a single search hit.
type RecipeSummary struct {
	ID        string
	Title     string
	Publisher string
	ImageURL  string
}

// Recipe is a fetched recipe with parsed, scalable ingredients.
type Recipe struct {
	ID          string
	Title       string
	Author      string
	ImageURL    string
	SourceURL   string
	Servings    int
	TimeMinutes int
	Ingredients []ParsedIngredient
}

// CookingTime estimates minutes from the ingredient count: 15 minutes for
// every started group of three ingredients.
func CookingTime(ingredientCount int) int {
	periods := int(math.Ceil(float64(ingredientCount) / 3))
	return periods * 15
}

// Quantity is a nullable ingredient amount.
type Quantity struct {
	Value float64
	Valid bool
}

// Amount returns a valid quantity holding v.
func Amount(v float64) Quantity {
	return Quantity{Value: v, Valid: true}
}

// String formats the quantity for display; invalid quantities render empty.
func (q Quantity) String() string {
	if !q.Valid {
		return ""
	}
	return strconv.FormatFloat(q.Value, 'f', -1, 64)
}

// ParsedIngredient is one ingredient line split into amount, unit and name.
type ParsedIngredient struct {
	Quantity Quantity
	Unit     string // canonical short unit, "" when none was recognised
	Name     string
}
