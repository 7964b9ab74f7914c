// Package engine coordinates searching, recipe selection, serving changes,
// the shopping list and favorites for one user session.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/favorites"
	"github.com/hammamikhairi/forkify/internal/ingredient"
	"github.com/hammamikhairi/forkify/internal/logger"
	"github.com/hammamikhairi/forkify/internal/shopping"
)

// DefaultResultsPerPage is how many search results make up one page.
const DefaultResultsPerPage = 10

// Option configures the engine.
type Option func(*Engine)

// WithResultsPerPage sets the page size for search results.
func WithResultsPerPage(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.perPage = n
		}
	}
}

// WithList uses an existing shopping list instead of a fresh one.
func WithList(l *shopping.List) Option {
	return func(e *Engine) { e.sess.List = l }
}

// WithFavorites uses an existing favorites store instead of a fresh one.
func WithFavorites(f *favorites.Store) Option {
	return func(e *Engine) { e.sess.Favorites = f }
}

// Session is everything the user has accumulated so far.
type Session struct {
	Query     string
	Results   []domain.RecipeSummary
	Page      int
	Recipe    *domain.Recipe
	List      *shopping.List
	Favorites *favorites.Store
}

// Page is one page of search results.
type Page struct {
	Results []domain.RecipeSummary
	Number  int // 1-based
	Pages   int
	Total   int
	PerPage int
}

// HasPrev reports whether there is a page before this one.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether there is a page after this one.
func (p Page) HasNext() bool { return p.Number < p.Pages }

// Status is a snapshot for status bars.
type Status struct {
	Query       string
	RecipeID    string
	RecipeTitle string
	Servings    int
	Liked       bool
	ListItems   int
	Favorites   int
}

// Engine drives one session. It depends only on interfaces and is fully
// testable with in-memory implementations. Safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	sess     Session
	inflight map[string]struct{}

	recipes domain.RecipeSource
	repo    domain.FavoritesRepository
	log     *logger.Logger
	perPage int
}

// New creates an engine with the given dependencies and options.
func New(recipes domain.RecipeSource, repo domain.FavoritesRepository, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		inflight: make(map[string]struct{}),
		recipes:  recipes,
		repo:     repo,
		log:      log,
		perPage:  DefaultResultsPerPage,
	}
	e.sess.Page = 1
	for _, opt := range opts {
		opt(e)
	}
	if e.sess.List == nil {
		e.sess.List = shopping.NewList(log)
	}
	if e.sess.Favorites == nil {
		e.sess.Favorites = favorites.NewStore(log)
	}
	return e
}

// ── Search ───────────────────────────────────────────────────────

// Search runs a query against the recipe source and returns the first page.
func (e *Engine) Search(ctx context.Context, query string) (Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, domain.ErrEmptyQuery
	}

	results, err := e.recipes.Search(ctx, query)
	if err != nil {
		return Page{}, fmt.Errorf("searching %q: %w", query, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess.Query = query
	e.sess.Results = results
	e.sess.Page = 1
	e.log.Info("search %q: %d results", query, len(results))
	return e.pageLocked(1), nil
}

// ResultsPage moves to the given page of the last search, clamped to the
// pages that exist.
func (e *Engine) ResultsPage(page int) Page {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.pageLocked(page)
	e.sess.Page = p.Number
	return p
}

// CurrentPage returns the page the user is on.
func (e *Engine) CurrentPage() Page {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pageLocked(e.sess.Page)
}

// NextPage and PrevPage step through results; at the ends they stay put.
func (e *Engine) NextPage() Page { return e.ResultsPage(e.CurrentPage().Number + 1) }

// PrevPage steps back one page.
func (e *Engine) PrevPage() Page { return e.ResultsPage(e.CurrentPage().Number - 1) }

func (e *Engine) pageLocked(page int) Page {
	total := len(e.sess.Results)
	pages := (total + e.perPage - 1) / e.perPage
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * e.perPage
	end := min(start+e.perPage, total)
	var results []domain.RecipeSummary
	if start < end {
		results = append(results, e.sess.Results[start:end]...)
	}
	return Page{Results: results, Number: page, Pages: pages, Total: total, PerPage: e.perPage}
}

// ── Recipe ───────────────────────────────────────────────────────

// SelectResult opens the n-th (1-based) result on the current page.
func (e *Engine) SelectResult(ctx context.Context, n int) (*domain.Recipe, error) {
	p := e.CurrentPage()
	if n < 1 || n > len(p.Results) {
		return nil, fmt.Errorf("result %d on page %d: %w", n, p.Number, domain.ErrNotFound)
	}
	return e.SelectRecipe(ctx, p.Results[n-1].ID)
}

// SelectRecipe fetches a recipe and makes it current. Asking for a recipe
// that is still being fetched fails with domain.ErrBusy.
func (e *Engine) SelectRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	e.mu.Lock()
	if _, busy := e.inflight[id]; busy {
		e.mu.Unlock()
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrBusy)
	}
	e.inflight[id] = struct{}{}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.inflight, id)
		e.mu.Unlock()
	}()

	raw, err := e.recipes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	r := BuildRecipe(raw)

	e.mu.Lock()
	e.sess.Recipe = r
	e.mu.Unlock()

	e.log.Info("opened recipe %s %q (%d ingredients)", r.ID, r.Title, len(r.Ingredients))
	return cloneRecipe(r), nil
}

// BuildRecipe turns a raw recipe into one with parsed ingredients, the
// default serving count and an estimated cooking time.
func BuildRecipe(raw *domain.RawRecipe) *domain.Recipe {
	parsed := ingredient.ParseAll(raw.Ingredients)
	return &domain.Recipe{
		ID:          raw.ID,
		Title:       raw.Title,
		Author:      raw.Publisher,
		ImageURL:    raw.ImageURL,
		SourceURL:   raw.SourceURL,
		Servings:    domain.DefaultServings,
		TimeMinutes: domain.CookingTime(len(parsed)),
		Ingredients: parsed,
	}
}

// Recipe returns a copy of the current recipe.
func (e *Engine) Recipe() (*domain.Recipe, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.sess.Recipe == nil {
		return nil, domain.ErrNoRecipe
	}
	return cloneRecipe(e.sess.Recipe), nil
}

// IncreaseServings adds one serving to the current recipe.
func (e *Engine) IncreaseServings() (*domain.Recipe, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess.Recipe == nil {
		return nil, domain.ErrNoRecipe
	}
	return e.setServingsLocked(e.sess.Recipe.Servings + 1)
}

// DecreaseServings removes one serving. At one serving the recipe is left
// alone and domain.ErrServingsFloor is returned.
func (e *Engine) DecreaseServings() (*domain.Recipe, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess.Recipe == nil {
		return nil, domain.ErrNoRecipe
	}
	if e.sess.Recipe.Servings <= 1 {
		return nil, domain.ErrServingsFloor
	}
	return e.setServingsLocked(e.sess.Recipe.Servings - 1)
}

// SetServings rescales the current recipe to n servings.
func (e *Engine) SetServings(n int) (*domain.Recipe, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess.Recipe == nil {
		return nil, domain.ErrNoRecipe
	}
	if n < 1 {
		return nil, fmt.Errorf("set servings to %d: %w", n, domain.ErrInvalidServings)
	}
	return e.setServingsLocked(n)
}

func (e *Engine) setServingsLocked(n int) (*domain.Recipe, error) {
	r := e.sess.Recipe
	scaled, err := ingredient.Rescale(r.Ingredients, r.Servings, n)
	if err != nil {
		return nil, err
	}
	e.log.Debug("servings %d -> %d for %s", r.Servings, n, r.ID)
	r.Ingredients = scaled
	r.Servings = n
	return cloneRecipe(r), nil
}

// ── Shopping list ────────────────────────────────────────────────

// AddRecipeToList copies every ingredient of the current recipe, at its
// current scale, onto the shopping list.
func (e *Engine) AddRecipeToList() ([]domain.ListEntry, error) {
	r, err := e.Recipe()
	if err != nil {
		return nil, err
	}

	added := make([]domain.ListEntry, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		added = append(added, e.sess.List.Add(ing.Quantity, ing.Unit, ing.Name))
	}
	e.log.Info("added %d items from %q to the list", len(added), r.Title)
	return added, nil
}

// ListItems returns the shopping list in insertion order.
func (e *Engine) ListItems() []domain.ListEntry {
	return e.sess.List.Items()
}

// DeleteItem removes an entry from the shopping list.
func (e *Engine) DeleteItem(id string) error {
	return e.sess.List.Delete(id)
}

// UpdateCount changes the quantity of a list entry.
func (e *Engine) UpdateCount(id string, q domain.Quantity) error {
	if q.Valid && q.Value < 0 {
		return fmt.Errorf("update %s to %s: %w", id, q, domain.ErrInvalidQuantity)
	}
	return e.sess.List.UpdateCount(id, q)
}

// ── Favorites ────────────────────────────────────────────────────

// LoadFavorites replaces the in-memory favorites with the persisted ones.
func (e *Engine) LoadFavorites(ctx context.Context) error {
	entries, err := e.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading favorites: %w", err)
	}
	e.sess.Favorites.Replace(entries)
	e.log.Info("loaded %d favorites", e.sess.Favorites.Count())
	return nil
}

// ToggleFavorite likes the current recipe, or unlikes it if it was liked,
// and persists the result. If persisting fails the toggle is undone. It
// reports whether the recipe is liked afterwards.
func (e *Engine) ToggleFavorite(ctx context.Context) (bool, error) {
	r, err := e.Recipe()
	if err != nil {
		return false, err
	}

	fav := e.sess.Favorites
	entry := domain.FavoriteEntry{ID: r.ID, Title: r.Title, Author: r.Author, ImageURL: r.ImageURL}
	liked := !fav.IsFavorite(r.ID)
	var undo func()
	if liked {
		if err := fav.Add(entry); err != nil {
			return false, err
		}
		undo = func() { fav.Delete(r.ID) }
	} else {
		before := fav.Entries()
		fav.Delete(r.ID)
		undo = func() { fav.Replace(before) }
	}

	if err := e.repo.Save(ctx, fav.Entries()); err != nil {
		undo()
		return !liked, fmt.Errorf("saving favorites: %w", err)
	}
	e.log.Info("favorite %s %q: liked=%t", r.ID, r.Title, liked)
	return liked, nil
}

// Favorites returns the liked recipes in the order they were liked.
func (e *Engine) Favorites() []domain.FavoriteEntry {
	return e.sess.Favorites.Entries()
}

// IsFavorite reports whether the recipe id is liked.
func (e *Engine) IsFavorite(id string) bool {
	return e.sess.Favorites.IsFavorite(id)
}

// ── Status ───────────────────────────────────────────────────────

// Status returns a snapshot of the session for display.
func (e *Engine) Status() Status {
	e.mu.RLock()
	st := Status{Query: e.sess.Query}
	if r := e.sess.Recipe; r != nil {
		st.RecipeID = r.ID
		st.RecipeTitle = r.Title
		st.Servings = r.Servings
	}
	e.mu.RUnlock()

	st.ListItems = e.sess.List.Len()
	st.Favorites = e.sess.Favorites.Count()
	if st.RecipeID != "" {
		st.Liked = e.sess.Favorites.IsFavorite(st.RecipeID)
	}
	return st
}

func cloneRecipe(r *domain.Recipe) *domain.Recipe {
	out := *r
	out.Ingredients = append([]domain.ParsedIngredient(nil), r.Ingredients...)
	return &out
}
