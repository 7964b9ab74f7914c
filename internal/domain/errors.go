package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidServings = errors.New("servings must be positive")
	ErrServingsFloor   = errors.New("servings cannot go below one")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrEmptyQuery      = errors.New("empty search query")
	ErrNoRecipe        = errors.New("no recipe selected")
	ErrBusy            = errors.New("retrieval already in progress")
	ErrNotImplemented  = errors.New("not implemented")
)
