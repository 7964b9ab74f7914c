package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

const searchBody = `{
  "count": 2,
  "recipes": [
    {"publisher": "101 Cookbooks", "title": "Best Pizza Dough Ever", "recipe_id": "47746",
     "image_url": "http://static.food2fork.com/best_pizza_dough_recipe1b20.jpg"},
    {"publisher": "The Pioneer Woman", "title": "Deep Dish Fruit Pizza", "recipe_id": "46956",
     "image_url": "http://static.food2fork.com/fruitpizza9a19.jpg"}
  ]
}`

const getBody = `{
  "recipe": {
    "publisher": "101 Cookbooks",
    "title": "Best Pizza Dough Ever",
    "recipe_id": "47746",
    "image_url": "http://static.food2fork.com/best_pizza_dough_recipe1b20.jpg",
    "source_url": "http://www.101cookbooks.com/archives/001199.html",
    "ingredients": ["4 1/2 cups (20.25 ounces) unbleached high-gluten flour", "1 3/4 teaspoons salt"]
  }
}`

func newTestAPI(t *testing.T, h http.HandlerFunc, opts ...APIOption) *APISource {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]APIOption{WithRateLimit(0, 0)}, opts...)
	return NewAPISource(srv.URL+"/api/", logger.New(logger.LevelOff, nil), opts...)
}

func TestAPISearch(t *testing.T) {
	src := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "pizza", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(searchBody))
	}, WithAPIKey("secret"))

	got, err := src.Search(context.Background(), "pizza")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.RecipeSummary{
		ID:        "47746",
		Title:     "Best Pizza Dough Ever",
		Publisher: "101 Cookbooks",
		ImageURL:  "http://static.food2fork.com/best_pizza_dough_recipe1b20.jpg",
	}, got[0])
}

func TestAPISearchNoKey(t *testing.T) {
	src := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, has := r.URL.Query()["key"]
		assert.False(t, has)
		_, _ = w.Write([]byte(`{"count":0,"recipes":[]}`))
	})

	got, err := src.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAPIGet(t *testing.T) {
	src := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/get", r.URL.Path)
		assert.Equal(t, "47746", r.URL.Query().Get("rId"))
		_, _ = w.Write([]byte(getBody))
	})

	got, err := src.Get(context.Background(), "47746")
	require.NoError(t, err)
	assert.Equal(t, "47746", got.ID)
	assert.Equal(t, "101 Cookbooks", got.Publisher)
	assert.Equal(t, "http://www.101cookbooks.com/archives/001199.html", got.SourceURL)
	assert.Len(t, got.Ingredients, 2)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"empty recipe", http.StatusOK, `{"recipe": {}}`, domain.ErrNotFound},
		{"not found", http.StatusNotFound, `{"error":"Couldn't find recipe"}`, domain.ErrNotFound},
		{"server error", http.StatusInternalServerError, `oops`, ErrUnexpectedStatus},
		{"bad json", http.StatusOK, `{"recipe": [`, nil},
		{"api error field", http.StatusOK, `{"error": "limit"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := src.Get(context.Background(), "x")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAPIGetCollapsesConcurrentCalls(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	src := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(getBody))
	})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*domain.RawRecipe, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := src.Get(context.Background(), "47746")
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}

	// Let every caller join the in-flight request before answering.
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "47746", r.ID)
	}
	// Callers get their own copies.
	results[0].Ingredients[0] = "changed"
	assert.NotEqual(t, "changed", results[1].Ingredients[0])
}

func TestAPIRateLimitHonoursContext(t *testing.T) {
	src := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(searchBody))
	}, WithRateLimit(0.001, 1))

	_, err := src.Search(context.Background(), "pizza")
	require.NoError(t, err)

	// The single token is spent; the next call cannot get one before the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = src.Search(ctx, "pizza")
	assert.Error(t, err)
}

func TestAPIGetCancelledCallerDoesNotFailOthers(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	src := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(getBody))
	})

	first, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := src.Get(first, "47746")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		r   *domain.RawRecipe
		err error
	}
	second := make(chan result, 1)
	go func() {
		r, err := src.Get(context.Background(), "47746")
		second <- result{r, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, "47746", res.r.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never finished")
	}
	assert.Equal(t, int32(1), hits.Load())
}
