package domain

// CommandType classifies what the user wants to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandSearch
	CommandSelectResult // pick a result on the current page by number
	CommandOpenRecipe   // open a recipe by its source ID
	CommandPage
	CommandIncreaseServings
	CommandDecreaseServings
	CommandSetServings
	CommandAddToList
	CommandShowList
	CommandDeleteItem
	CommandUpdateCount
	CommandToggleFavorite
	CommandShowFavorites
	CommandShowRecipe
	CommandExport
	CommandReadAloud
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandSearch:
		return "search"
	case CommandSelectResult:
		return "select_result"
	case CommandOpenRecipe:
		return "open_recipe"
	case CommandPage:
		return "page"
	case CommandIncreaseServings:
		return "increase_servings"
	case CommandDecreaseServings:
		return "decrease_servings"
	case CommandSetServings:
		return "set_servings"
	case CommandAddToList:
		return "add_to_list"
	case CommandShowList:
		return "show_list"
	case CommandDeleteItem:
		return "delete_item"
	case CommandUpdateCount:
		return "update_count"
	case CommandToggleFavorite:
		return "toggle_favorite"
	case CommandShowFavorites:
		return "show_favorites"
	case CommandShowRecipe:
		return "show_recipe"
	case CommandExport:
		return "export"
	case CommandReadAloud:
		return "read_aloud"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command represents a parsed user action.
type Command struct {
	Type    CommandType
	Payload string // optional argument, e.g. the search query or an item ID
}
