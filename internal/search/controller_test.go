package search

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

// fakeQueryService counts fetches and delegates to a per-test hook
type fakeQueryService struct {
	mu    sync.Mutex
	calls int
	fn    func(query string, page, limit int) ([]domain.PostSummary, int64, error)
}

func (f *fakeQueryService) SearchPosts(_ context.Context, query string, page, limit int) ([]domain.PostSummary, int64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(query, page, limit)
}

func (f *fakeQueryService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeNavigator records replace-style navigations
type fakeNavigator struct {
	mu       sync.Mutex
	replaced []string
}

func (f *fakeNavigator) Replace(u string) {
	f.mu.Lock()
	f.replaced = append(f.replaced, u)
	f.mu.Unlock()
}

func (f *fakeNavigator) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.replaced) == 0 {
		return ""
	}
	return f.replaced[len(f.replaced)-1]
}

func fixedResults(results []domain.PostSummary, total int64) func(string, int, int) ([]domain.PostSummary, int64, error) {
	return func(string, int, int) ([]domain.PostSummary, int64, error) {
		return results, total, nil
	}
}

func TestSearch_Idempotent(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(summaries(3), 3)}
	ctrl := NewController(svc, &fakeNavigator{})

	ctrl.Search(context.Background(), "upsc", 1)
	ctrl.Search(context.Background(), "upsc", 1)

	assert.Equal(t, 1, svc.callCount())
	assert.Equal(t, PhaseLoaded, ctrl.State().Phase)
}

func TestSearch_FirstInvocationAlwaysRuns(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(nil, 0)}
	ctrl := NewController(svc, &fakeNavigator{})

	// Empty query on page 1 matches the zero-value fingerprint but must
	// still run the first time.
	ctrl.Search(context.Background(), "", 1)

	assert.Equal(t, 1, svc.callCount())
}

func TestSearch_DistinctPagesFetchAgain(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(summaries(10), 23)}
	ctrl := NewController(svc, &fakeNavigator{})

	ctrl.Search(context.Background(), "upsc", 1)
	ctrl.Search(context.Background(), "upsc", 2)
	ctrl.Search(context.Background(), "ssc", 2)

	assert.Equal(t, 3, svc.callCount())
}

func TestSearch_ClampsPageToKnownRange(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(summaries(10), 23)}
	ctrl := NewController(svc, &fakeNavigator{})

	ctrl.Search(context.Background(), "upsc", 1)
	// 23 results → 3 pages; page 99 clamps to 3 before the fetch
	ctrl.Search(context.Background(), "upsc", 99)

	assert.Equal(t, 3, ctrl.State().Page)
}

func TestSearch_FailSoft(t *testing.T) {
	svc := &fakeQueryService{fn: func(string, int, int) ([]domain.PostSummary, int64, error) {
		return nil, 0, errors.New("connection refused")
	}}
	ctrl := NewController(svc, &fakeNavigator{})

	assert.NotPanics(t, func() {
		ctrl.Search(context.Background(), "upsc", 1)
	})

	s := ctrl.State()
	assert.Empty(t, s.Results)
	assert.Zero(t, s.TotalCount)
	assert.False(t, s.Loading)
	assert.Equal(t, PhaseEmpty, s.Phase)
}

func TestSearch_StaleResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	svc := &fakeQueryService{}
	svc.fn = func(query string, _, _ int) ([]domain.PostSummary, int64, error) {
		if query == "slow" {
			close(firstStarted)
			<-release
			return summaries(10), 100, nil
		}
		return summaries(2), 2, nil
	}
	ctrl := NewController(svc, &fakeNavigator{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.Search(context.Background(), "slow", 1)
	}()

	// The second search starts after the first fetch is in flight and
	// finishes first; the first fetch must not overwrite it.
	<-firstStarted
	ctrl.Search(context.Background(), "fast", 1)
	close(release)
	wg.Wait()

	s := ctrl.State()
	assert.Equal(t, "fast", s.Query)
	assert.Equal(t, int64(2), s.TotalCount)
	assert.Len(t, s.Results, 2)
}

func TestSubmitSearch_ResetsToPageOne(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(summaries(10), 40)}
	nav := &fakeNavigator{}
	ctrl := NewController(svc, nav)

	ctrl.Search(context.Background(), "upsc", 3)
	ctrl.SubmitSearch(context.Background(), "ssc cgl")

	s := ctrl.State()
	assert.Equal(t, "ssc cgl", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "/search?q=ssc+cgl", nav.last())
}

func TestChangePage(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(summaries(10), 23)}
	nav := &fakeNavigator{}
	ctrl := NewController(svc, nav)

	ctrl.Search(context.Background(), "upsc", 1)

	// Out of range in both directions: no fetch, no navigation
	ctrl.ChangePage(context.Background(), 0)
	ctrl.ChangePage(context.Background(), 4)
	assert.Equal(t, 1, svc.callCount())
	assert.Empty(t, nav.replaced)

	ctrl.ChangePage(context.Background(), 2)
	assert.Equal(t, 2, svc.callCount())
	assert.Equal(t, 2, ctrl.State().Page)
	assert.Equal(t, "/search?page=2&q=upsc", nav.last())
}

func TestClear(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(summaries(10), 23)}
	nav := &fakeNavigator{}
	ctrl := NewController(svc, nav)

	ctrl.Search(context.Background(), "upsc", 2)
	ctrl.Clear()

	s := ctrl.State()
	assert.Equal(t, "", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.Empty(t, s.Results)
	assert.Equal(t, "/search", nav.last())

	// The fingerprint resets with the state: the same search runs again
	ctrl.Search(context.Background(), "upsc", 2)
	assert.Equal(t, 2, svc.callCount())
}

func TestInitialize(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(summaries(10), 23)}
	ctrl := NewController(svc, &fakeNavigator{})

	params, _ := url.ParseQuery("q=upsc&page=2")
	ctrl.Initialize(context.Background(), params)

	s := ctrl.State()
	assert.Equal(t, "upsc", s.Query)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 1, svc.callCount())
}

func TestInitialize_EmptyQuerySkipsFetch(t *testing.T) {
	svc := &fakeQueryService{fn: fixedResults(nil, 0)}
	ctrl := NewController(svc, &fakeNavigator{})

	ctrl.Initialize(context.Background(), url.Values{})

	assert.Equal(t, 0, svc.callCount())
	assert.Equal(t, PhaseIdle, ctrl.State().Phase)
}
