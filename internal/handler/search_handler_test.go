package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/examwatch/examwatch-backend/internal/seo"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQueryService struct {
	results []domain.PostSummary
	total   int64
	err     error
}

func (s *stubQueryService) SearchPosts(_ context.Context, _ string, _, _ int) ([]domain.PostSummary, int64, error) {
	return s.results, s.total, s.err
}

func fixtureSummaries(n int) []domain.PostSummary {
	out := make([]domain.PostSummary, n)
	for i := range out {
		out[i] = domain.PostSummary{
			ID:          uint64(i + 1),
			Slug:        "upsc-cse-2026",
			Title:       "UPSC CSE 2026 Notification",
			PublishedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func newSearchRouter(svc *stubQueryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.LoadHTMLGlob("../../templates/*.html")

	h := NewSearchHandler(svc, seo.NewBuilder("https://examwatch.in", "ExamWatch"))
	router.GET("/search", h.SearchPage)
	router.GET("/api/v1/search", h.Search)
	return router
}

func TestSearchAPI_Success(t *testing.T) {
	router := newSearchRouter(&stubQueryService{results: fixtureSummaries(10), total: 23})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=upsc&page=1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.PostSummary `json:"data"`
		Meta struct {
			Query      string `json:"query"`
			Page       int    `json:"page"`
			Limit      int    `json:"limit"`
			Total      int64  `json:"total"`
			TotalPages int    `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Data, 10)
	assert.Equal(t, "upsc", resp.Meta.Query)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.Limit)
	assert.Equal(t, int64(23), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestSearchAPI_EmptyQueryListsAll(t *testing.T) {
	router := newSearchRouter(&stubQueryService{results: fixtureSummaries(5), total: 5})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":5`)
}

func TestSearchAPI_FetchFailureIsSoft(t *testing.T) {
	router := newSearchRouter(&stubQueryService{err: errors.New("service down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=upsc", nil)
	router.ServeHTTP(w, req)

	// Fail-soft: HTTP 200 with zero results, no error payload
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
	assert.NotContains(t, w.Body.String(), `"error"`)
}

func TestSearchPage_RendersResults(t *testing.T) {
	router := newSearchRouter(&stubQueryService{results: fixtureSummaries(10), total: 23})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/search?q=upsc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "UPSC CSE 2026 Notification")
	assert.Contains(t, body, "SearchResultsPage")
	assert.Contains(t, body, `rel="canonical"`)
	// Page 1 of 3: Next enabled, Previous disabled
	assert.Contains(t, body, `rel="next"`)
	assert.NotContains(t, body, `rel="prev"`)
}

func TestSearchPage_NoResults(t *testing.T) {
	router := newSearchRouter(&stubQueryService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/search?q=zzz-no-match", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No results found")
}

func TestSearchPage_IdleWithoutQuery(t *testing.T) {
	svc := &stubQueryService{results: fixtureSummaries(3), total: 3}
	router := newSearchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// No q parameter: no fetch, prompt instead of results
	assert.NotContains(t, w.Body.String(), "UPSC CSE 2026 Notification")
	assert.Contains(t, w.Body.String(), "Type a keyword")
}
