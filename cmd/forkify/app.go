package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/forkify/internal/conversation"
	"github.com/hammamikhairi/forkify/internal/display"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/engine"
	"github.com/hammamikhairi/forkify/internal/export"
	"github.com/hammamikhairi/forkify/internal/ingredient"
	"github.com/hammamikhairi/forkify/internal/logger"
	"github.com/hammamikhairi/forkify/internal/speech"
)

type cliApp struct {
	engine   *engine.Engine
	parser   domain.CommandParser
	notifier domain.Notifier
	voice    domain.SpeechProvider
	mouth    *speech.Mouth // nil when TTS is disabled
	ear      *speech.Ear   // nil when voice input is disabled
	log      *logger.Logger
	ui       *display.UI
}

// say prints a conversational line and speaks it when TTS is on.
func (a *cliApp) say(ctx context.Context, text string) {
	if err := a.notifier.Notify(ctx, text); err != nil {
		a.log.Error("notify: %v", err)
	}
}

// fail reports an error to the user.
func (a *cliApp) fail(ctx context.Context, text string) {
	if err := a.notifier.NotifyUrgent(ctx, text); err != nil {
		a.log.Error("notify: %v", err)
	}
}

func (a *cliApp) run(ctx context.Context) {
	a.say(ctx, speech.LineWelcome())

	// Receiving on a nil channel blocks forever, so without an ear only the
	// keyboard case fires.
	var voiceCh <-chan string
	if a.ear != nil {
		voiceCh = a.ear.C()
	}
	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		case input, ok = <-voiceCh:
			if !ok {
				voiceCh = nil
				continue
			}
			a.ui.PrintVoice(input)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}
		a.log.Debug("command: %s (payload=%q)", cmd.Type, cmd.Payload)

		if a.mouth != nil && cmd.Type != domain.CommandUnknown {
			a.mouth.Interrupt()
		}
		if quit := a.handle(ctx, cmd); quit {
			return
		}
	}
}

// handle dispatches one command. It reports whether the app should exit.
func (a *cliApp) handle(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CommandSearch:
		a.search(ctx, cmd.Payload)
	case domain.CommandSelectResult:
		a.selectResult(ctx, cmd.Payload)
	case domain.CommandOpenRecipe:
		a.open(ctx, cmd.Payload)
	case domain.CommandPage:
		a.page(ctx, cmd.Payload)
	case domain.CommandIncreaseServings:
		a.servings(ctx, a.engine.IncreaseServings)
	case domain.CommandDecreaseServings:
		a.servings(ctx, a.engine.DecreaseServings)
	case domain.CommandSetServings:
		n, _ := strconv.Atoi(cmd.Payload)
		a.servings(ctx, func() (*domain.Recipe, error) { return a.engine.SetServings(n) })
	case domain.CommandAddToList:
		a.addToList(ctx)
	case domain.CommandShowList:
		a.showList()
	case domain.CommandDeleteItem:
		a.deleteItem(ctx, cmd.Payload)
	case domain.CommandUpdateCount:
		a.updateCount(ctx, cmd.Payload)
	case domain.CommandToggleFavorite:
		a.toggleFavorite(ctx)
	case domain.CommandShowFavorites:
		a.showFavorites()
	case domain.CommandShowRecipe:
		a.showRecipe(ctx)
	case domain.CommandExport:
		a.export(ctx, cmd.Payload)
	case domain.CommandReadAloud:
		a.readAloud(ctx)
	case domain.CommandHelp:
		a.showHelp()
	case domain.CommandQuit:
		a.say(ctx, speech.LineBye())
		if a.mouth != nil {
			// Give the goodbye a moment to start.
			time.Sleep(300 * time.Millisecond)
		}
		return true
	default:
		a.ui.PrintHint(speech.LineUnknown(cmd.Payload) + " Type 'help' for commands.")
	}
	return false
}

// ── Search ───────────────────────────────────────────────────────

func (a *cliApp) search(ctx context.Context, query string) {
	a.ui.SetBusy("searching")
	p, err := a.engine.Search(ctx, query)
	a.ui.SetBusy("")
	if err != nil {
		a.fail(ctx, fmt.Sprintf("Search failed: %v", err))
		return
	}
	a.say(ctx, speech.LineResults(query, p.Total))
	a.showPage(p)
}

func (a *cliApp) showPage(p engine.Page) {
	if p.Total == 0 {
		return
	}
	a.ui.PrintHeading(fmt.Sprintf("Results (page %d of %d)", p.Number, p.Pages))
	a.ui.PrintLines(display.ResultLines(p.Results))

	var nav []string
	if p.HasPrev() {
		nav = append(nav, "'prev'")
	}
	if p.HasNext() {
		nav = append(nav, "'next'")
	}
	hint := "Type a number to open a recipe."
	if len(nav) > 0 {
		hint += " " + strings.Join(nav, " / ") + " for more."
	}
	a.ui.PrintHint(hint)
}

func (a *cliApp) page(ctx context.Context, payload string) {
	var p engine.Page
	switch payload {
	case conversation.PageNext:
		p = a.engine.NextPage()
	case conversation.PagePrev:
		p = a.engine.PrevPage()
	default:
		n, _ := strconv.Atoi(payload)
		p = a.engine.ResultsPage(n)
	}
	if p.Total == 0 {
		a.ui.PrintHint("Search for something first, e.g. 'search pizza'.")
		return
	}
	a.showPage(p)
}

// ── Recipe ───────────────────────────────────────────────────────

func (a *cliApp) selectResult(ctx context.Context, payload string) {
	n, _ := strconv.Atoi(payload)
	a.ui.SetBusy("loading recipe")
	r, err := a.engine.SelectResult(ctx, n)
	a.ui.SetBusy("")
	a.opened(ctx, r, err)
}

func (a *cliApp) open(ctx context.Context, id string) {
	a.ui.SetBusy("loading recipe")
	r, err := a.engine.SelectRecipe(ctx, id)
	a.ui.SetBusy("")
	a.opened(ctx, r, err)
}

func (a *cliApp) opened(ctx context.Context, r *domain.Recipe, err error) {
	switch {
	case errors.Is(err, domain.ErrBusy):
		a.ui.PrintHint("Still loading that recipe.")
	case errors.Is(err, domain.ErrNotFound):
		a.fail(ctx, "No such recipe.")
	case err != nil:
		a.fail(ctx, fmt.Sprintf("Could not load recipe: %v", err))
	default:
		a.printRecipe(r)
		a.say(ctx, fmt.Sprintf("%s. %s", r.Title, speech.LineServings(r.Servings)))
	}
}

func (a *cliApp) printRecipe(r *domain.Recipe) {
	heart := "♡"
	if a.engine.IsFavorite(r.ID) {
		heart = "♥"
	}
	a.ui.PrintHeading(fmt.Sprintf("%s %s", heart, r.Title))
	a.ui.PrintLines(display.RecipeLines(r))
}

func (a *cliApp) showRecipe(ctx context.Context) {
	r, err := a.engine.Recipe()
	if err != nil {
		a.ui.PrintHint(speech.LineNoRecipe())
		return
	}
	a.printRecipe(r)
}

func (a *cliApp) servings(ctx context.Context, change func() (*domain.Recipe, error)) {
	r, err := change()
	switch {
	case errors.Is(err, domain.ErrNoRecipe):
		a.ui.PrintHint(speech.LineNoRecipe())
	case errors.Is(err, domain.ErrServingsFloor):
		a.say(ctx, speech.LineServingsFloor())
	case errors.Is(err, domain.ErrInvalidServings):
		a.fail(ctx, "Servings must be at least 1.")
	case err != nil:
		a.fail(ctx, err.Error())
	default:
		a.say(ctx, speech.LineServings(r.Servings))
		a.ui.PrintLines(display.RecipeLines(r))
	}
}

func (a *cliApp) readAloud(ctx context.Context) {
	r, err := a.engine.Recipe()
	if err != nil {
		a.ui.PrintHint(speech.LineNoRecipe())
		return
	}
	if a.mouth == nil {
		a.ui.PrintHint("Speech is off. Set the Azure speech keys to hear recipes.")
		return
	}
	if err := a.voice.Speak(ctx, speech.LineRecipe(r)); err != nil {
		a.fail(ctx, fmt.Sprintf("Could not read recipe: %v", err))
	}
}

// ── Shopping list ────────────────────────────────────────────────

func (a *cliApp) addToList(ctx context.Context) {
	added, err := a.engine.AddRecipeToList()
	if err != nil {
		a.ui.PrintHint(speech.LineNoRecipe())
		return
	}
	a.say(ctx, speech.LineAddedToList(len(added)))
	a.showList()
}

func (a *cliApp) showList() {
	items := a.engine.ListItems()
	if len(items) == 0 {
		a.ui.PrintHint("Your shopping list is empty. Open a recipe and type 'add'.")
		return
	}
	a.ui.PrintHeading("Shopping list")
	a.ui.PrintLines(display.ListLines(items))
	a.ui.PrintHint("'remove <n>' deletes an item, 'set <n> <qty>' changes its amount.")
}

// resolveItem maps a list number as shown by showList, or a raw entry ID,
// to an entry ID.
func (a *cliApp) resolveItem(handle string) string {
	items := a.engine.ListItems()
	if n, err := strconv.Atoi(handle); err == nil && n >= 1 && n <= len(items) {
		return items[n-1].ID
	}
	return handle
}

func (a *cliApp) deleteItem(ctx context.Context, handle string) {
	if err := a.engine.DeleteItem(a.resolveItem(handle)); err != nil {
		a.fail(ctx, fmt.Sprintf("No list item %s.", handle))
		return
	}
	a.say(ctx, speech.LineAck())
	a.showList()
}

func (a *cliApp) updateCount(ctx context.Context, payload string) {
	fields := strings.Fields(payload)
	if len(fields) < 2 {
		a.ui.PrintHint("Usage: set <n> <qty>")
		return
	}
	v, err := ingredient.EvaluateQuantity(fields[1:])
	if err != nil {
		a.fail(ctx, fmt.Sprintf("Not a quantity: %s", strings.Join(fields[1:], " ")))
		return
	}

	err = a.engine.UpdateCount(a.resolveItem(fields[0]), domain.Amount(v))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.fail(ctx, fmt.Sprintf("No list item %s.", fields[0]))
	case errors.Is(err, domain.ErrInvalidQuantity):
		a.fail(ctx, "Quantities can't be negative.")
	case err != nil:
		a.fail(ctx, err.Error())
	default:
		a.say(ctx, speech.LineAck())
		a.showList()
	}
}

func (a *cliApp) export(ctx context.Context, path string) {
	items := a.engine.ListItems()
	format := export.FormatFromPath(path)

	f, err := os.Create(path)
	if err != nil {
		a.fail(ctx, fmt.Sprintf("Export failed: %v", err))
		return
	}
	defer f.Close()

	if err := export.Write(f, format, items); err != nil {
		a.fail(ctx, fmt.Sprintf("Export failed: %v", err))
		return
	}
	a.log.Info("exported %d items to %s (%s)", len(items), path, format)
	a.say(ctx, fmt.Sprintf("Saved %d items to %s.", len(items), path))
}

// ── Favorites ────────────────────────────────────────────────────

func (a *cliApp) toggleFavorite(ctx context.Context) {
	r, err := a.engine.Recipe()
	if err != nil {
		a.ui.PrintHint(speech.LineNoRecipe())
		return
	}
	liked, err := a.engine.ToggleFavorite(ctx)
	if err != nil {
		a.fail(ctx, fmt.Sprintf("Could not save favorites: %v", err))
		return
	}
	a.say(ctx, speech.LineLiked(r.Title, liked))
}

func (a *cliApp) showFavorites() {
	favs := a.engine.Favorites()
	if len(favs) == 0 {
		a.ui.PrintHint("No favorites yet. Open a recipe and type 'like'.")
		return
	}
	a.ui.PrintHeading("Favorites")
	a.ui.PrintLines(display.FavoriteLines(favs))
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Commands:")
	a.ui.PrintLines([]string{
		"search <query>     Find recipes (e.g. 'search pizza')",
		"1, 2, 3...         Open a result on the current page",
		"next / prev        Page through results, or 'page <n>'",
		"open <id>          Open a recipe by ID",
		"more / less        One serving up or down",
		"servings <n>       Scale to n servings",
		"recipe             Show the current recipe",
		"read               Read the recipe aloud",
		"add                Add the ingredients to the shopping list",
		"list               Show the shopping list",
		"remove <n>         Remove a list item",
		"set <n> <qty>      Change a list item's quantity (e.g. 'set 2 1 1/2')",
		"export <file>      Save the list (.yaml, .json, anything else = table)",
		"like               Toggle the current recipe as a favorite",
		"favorites          Show favorites",
		"help / quit",
	})
}
