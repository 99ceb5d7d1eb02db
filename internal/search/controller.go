package search

import (
	"context"
	"net/url"
	"sync"

	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/examwatch/examwatch-backend/pkg/logger"
)

// QueryService is the injected handle to the posts store. A fake satisfies
// it in tests; SearchService backs it in production.
type QueryService interface {
	SearchPosts(ctx context.Context, query string, page, limit int) ([]domain.PostSummary, int64, error)
}

// Navigator receives replace-style URL rewrites: the address changes without
// adding a history entry. The HTTP layer records it for the rendered page;
// tests assert against it.
type Navigator interface {
	Replace(url string)
}

// Controller owns the search view state and orchestrates fetches against the
// query service.
//
// Redundant triggers are de-duplicated by the last executed (query, page)
// fingerprint. Each fetch additionally carries a monotonically increasing
// token; a completion whose token is no longer the latest is discarded, so
// overlapping distinct searches resolve last-write-wins regardless of
// response ordering.
type Controller struct {
	svc QueryService
	nav Navigator

	mu        sync.Mutex
	state     State
	hasRun    bool
	lastQuery string
	lastPage  int
	seq       uint64
}

// NewController creates a controller with an empty state
func NewController(svc QueryService, nav Navigator) *Controller {
	return &Controller{
		svc:   svc,
		nav:   nav,
		state: NewState(),
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Initialize seeds the state from URL parameters and, when q is non-empty,
// runs the search immediately.
func (c *Controller) Initialize(ctx context.Context, params url.Values) {
	query, page := ParseParams(params)

	c.mu.Lock()
	c.state.Query = query
	c.state.Page = page
	c.mu.Unlock()

	if query != "" {
		c.Search(ctx, query, page)
	}
}

// Search fetches one page of results for the query. It is a no-op when
// (query, page) equals the last executed pair. The fetch runs without the
// state lock held; its completion is committed only when no newer search has
// started since.
func (c *Controller) Search(ctx context.Context, query string, page int) {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	// Clamp to the known page range before fetching
	if tp := c.state.TotalPages(); tp > 0 && page > tp {
		page = tp
	}
	if c.hasRun && query == c.lastQuery && page == c.lastPage {
		c.mu.Unlock()
		return
	}
	c.hasRun = true
	c.lastQuery = query
	c.lastPage = page
	c.seq++
	token := c.seq
	c.state = Reduce(c.state, SearchStarted{Query: query, Page: page})
	c.mu.Unlock()

	results, total, err := c.svc.SearchPosts(ctx, query, page, PageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		// A newer search superseded this fetch; drop its result.
		return
	}
	if err != nil {
		logger.GetLogger().Error().
			Err(err).
			Str("query", query).
			Int("page", page).
			Msg("search fetch failed")
		c.state = Reduce(c.state, SearchFailed{})
		return
	}
	c.state = Reduce(c.state, ResultsLoaded{Results: results, Total: total})
}

// SubmitSearch starts a fresh search for the query: page resets to 1, the
// URL is rewritten, then the fetch runs. The two steps are explicit and
// sequential; nothing is deferred.
func (c *Controller) SubmitSearch(ctx context.Context, query string) {
	c.mu.Lock()
	c.state.Query = query
	c.state.Page = 1
	c.mu.Unlock()

	c.nav.Replace(BuildURL(query, 1))
	c.Search(ctx, query, 1)
}

// ChangePage moves to another result page. Out-of-range targets are ignored.
func (c *Controller) ChangePage(ctx context.Context, page int) {
	c.mu.Lock()
	if page < 1 || page > c.state.TotalPages() {
		c.mu.Unlock()
		return
	}
	query := c.state.Query
	c.state.Page = page
	c.mu.Unlock()

	c.nav.Replace(BuildURL(query, page))
	c.Search(ctx, query, page)
}

// Clear resets the view to its initial state and the URL to the bare path.
// The fingerprint is reset too, so an identical follow-up search runs again.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.state = Reduce(c.state, Cleared{})
	c.hasRun = false
	c.lastQuery = ""
	c.lastPage = 0
	c.mu.Unlock()

	c.nav.Replace(Path)
}
