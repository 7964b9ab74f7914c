package domain

// ListEntry is one line of the shopping list.
type ListEntry struct {
	ID       string
	Quantity Quantity
	Unit     string
	Name     string
}

// FavoriteEntry is a favorited recipe, keyed by the recipe ID.
type FavoriteEntry struct {
	ID       string
	Title    string
	Author   string
	ImageURL string
}
