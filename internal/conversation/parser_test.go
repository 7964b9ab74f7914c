package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	parser := NewKeywordParser(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.CommandType
		wantPayload string
	}{
		// Search
		{"search pizza", domain.CommandSearch, "pizza"},
		{"find chicken tikka masala", domain.CommandSearch, "chicken tikka masala"},
		{"  Search   Pasta  ", domain.CommandSearch, "Pasta"},

		// Results
		{"3", domain.CommandSelectResult, "3"},
		{"pick 12", domain.CommandSelectResult, "12"},
		{"open 47746", domain.CommandOpenRecipe, "47746"},
		{"page 2", domain.CommandPage, "2"},
		{"next page", domain.CommandPage, PageNext},
		{"next", domain.CommandPage, PageNext},
		{"prev page", domain.CommandPage, PagePrev},
		{"previous", domain.CommandPage, PagePrev},

		// Servings
		{"more", domain.CommandIncreaseServings, ""},
		{"+", domain.CommandIncreaseServings, ""},
		{"inc", domain.CommandIncreaseServings, ""},
		{"less", domain.CommandDecreaseServings, ""},
		{"-", domain.CommandDecreaseServings, ""},
		{"dec", domain.CommandDecreaseServings, ""},
		{"servings 6", domain.CommandSetServings, "6"},
		{"for 2 people", domain.CommandSetServings, "2"},

		// List
		{"add", domain.CommandAddToList, ""},
		{"shop", domain.CommandAddToList, ""},
		{"add to shopping list", domain.CommandAddToList, ""},
		{"list", domain.CommandShowList, ""},
		{"remove 1f0e", domain.CommandDeleteItem, "1f0e"},
		{"del 2", domain.CommandDeleteItem, "2"},
		{"set 2 1.5", domain.CommandUpdateCount, "2 1.5"},
		{"set 3 1 1/2", domain.CommandUpdateCount, "3 1 1/2"},

		// Favorites
		{"like", domain.CommandToggleFavorite, ""},
		{"LOVE", domain.CommandToggleFavorite, ""},
		{"fav", domain.CommandToggleFavorite, ""},
		{"likes", domain.CommandShowFavorites, ""},
		{"favorites", domain.CommandShowFavorites, ""},

		// Misc
		{"recipe", domain.CommandShowRecipe, ""},
		{"show", domain.CommandShowRecipe, ""},
		{"export list.yaml", domain.CommandExport, "list.yaml"},
		{"read", domain.CommandReadAloud, ""},
		{"help", domain.CommandHelp, ""},
		{"?", domain.CommandHelp, ""},
		{"quit", domain.CommandQuit, ""},
		{"q", domain.CommandQuit, ""},

		// Unknown
		{"make me a sandwich", domain.CommandUnknown, "make me a sandwich"},
		{"search", domain.CommandUnknown, "search"},
		{"1234", domain.CommandUnknown, "1234"},
		{"", domain.CommandUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parser.Parse(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, cmd.Type, "type for %q", tt.input)
			assert.Equal(t, tt.wantPayload, cmd.Payload, "payload for %q", tt.input)
		})
	}
}

func TestCommandTypeString(t *testing.T) {
	assert.Equal(t, "toggle_favorite", domain.CommandToggleFavorite.String())
	assert.Equal(t, "unknown", domain.CommandType(999).String())
}
