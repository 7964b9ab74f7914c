package domain

import "context"

// RecipeSource provides recipes. Implementations can be in-memory (seeded),
// or backed by a remote recipe API.
type RecipeSource interface {
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*RawRecipe, error)
}

// FavoritesRepository persists the favorites set. The store owns uniqueness;
// a repository just keeps the ordered sequence it is given.
type FavoritesRepository interface {
	Load(ctx context.Context) ([]FavoriteEntry, error)
	Save(ctx context.Context, entries []FavoriteEntry) error
}

// CommandParser converts raw user input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or use text-to-speech.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// SpeechProvider handles voice input/output. The no-op implementation is
// used when voice is disabled.
type SpeechProvider interface {
	Listen(ctx context.Context) (string, error)
	Speak(ctx context.Context, text string) error
}
