package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

var _ domain.RecipeSource = (*APISource)(nil)

// ErrUnexpectedStatus is returned when the recipe API answers with anything
// but 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status")

// ── Wire types ───────────────────────────────────────────────────

type searchResponse struct {
	Count   int          `json:"count"`
	Recipes []wireRecipe `json:"recipes"`
	Error   string       `json:"error,omitempty"`
}

type getResponse struct {
	Recipe wireRecipe `json:"recipe"`
	Error  string     `json:"error,omitempty"`
}

type wireRecipe struct {
	ID          string   `json:"recipe_id"`
	Title       string   `json:"title"`
	Publisher   string   `json:"publisher"`
	ImageURL    string   `json:"image_url"`
	SourceURL   string   `json:"source_url,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// ── Source ───────────────────────────────────────────────────────

// APIOption configures the APISource.
type APIOption func(*APISource)

// WithAPIKey sends key as the "key" query parameter on every request.
func WithAPIKey(key string) APIOption {
	return func(s *APISource) { s.apiKey = key }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) APIOption {
	return func(s *APISource) { s.http.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) APIOption {
	return func(s *APISource) { s.http = c }
}

// WithRateLimit caps outgoing requests at perSecond with the given burst.
// A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) APIOption {
	return func(s *APISource) {
		if perSecond <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// APISource fetches recipes from a food2fork-style HTTP API.
type APISource struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
	log     *logger.Logger
}

// NewAPISource creates a source for the API rooted at baseURL, e.g.
// "https://forkify-api.herokuapp.com/api".
func NewAPISource(baseURL string, log *logger.Logger, opts ...APIOption) *APISource {
	s := &APISource{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		log:     log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search queries the API for recipes matching query.
func (s *APISource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	var resp searchResponse
	if err := s.call(ctx, "search", url.Values{"q": {query}}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("recipe api: search %q: %s", query, resp.Error)
	}

	out := make([]domain.RecipeSummary, 0, len(resp.Recipes))
	for _, r := range resp.Recipes {
		out = append(out, domain.RecipeSummary{
			ID:        r.ID,
			Title:     r.Title,
			Publisher: r.Publisher,
			ImageURL:  r.ImageURL,
		})
	}
	s.log.Debug("recipe api: search %q returned %d (count=%d)", query, len(out), resp.Count)
	return out, nil
}

// Get fetches one recipe. Concurrent calls for the same ID share a single
// request. The shared request is detached from any one caller's
// cancellation; each caller stops waiting when its own ctx is done.
func (s *APISource) Get(ctx context.Context, id string) (*domain.RawRecipe, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(id, func() (any, error) {
		return s.fetch(shared, id)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		s.log.Debug("recipe api: shared in-flight fetch of %s", id)
	}

	r := *res.Val.(*domain.RawRecipe)
	r.Ingredients = append([]string(nil), r.Ingredients...)
	return &r, nil
}

func (s *APISource) fetch(ctx context.Context, id string) (*domain.RawRecipe, error) {
	var resp getResponse
	if err := s.call(ctx, "get", url.Values{"rId": {id}}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("recipe api: get %s: %s", id, resp.Error)
	}
	if resp.Recipe.ID == "" {
		return nil, fmt.Errorf("recipe %q: %w", id, domain.ErrNotFound)
	}

	w := resp.Recipe
	return &domain.RawRecipe{
		ID:          w.ID,
		Title:       w.Title,
		Publisher:   w.Publisher,
		ImageURL:    w.ImageURL,
		SourceURL:   w.SourceURL,
		Ingredients: w.Ingredients,
	}, nil
}

func (s *APISource) call(ctx context.Context, endpoint string, params url.Values, into any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("recipe api: rate limit: %w", err)
	}

	if s.apiKey != "" {
		params.Set("key", s.apiKey)
	}
	target := s.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("recipe api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	s.log.Debug("recipe api: GET %s/%s", s.baseURL, endpoint)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("recipe api: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("recipe api: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound && endpoint == "get" {
		return fmt.Errorf("recipe %q: %w", params.Get("rId"), domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recipe api: %s: %w: %s", resp.Status, ErrUnexpectedStatus, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("recipe api: unmarshal response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
