package handler

import (
	"html/template"
	"net/http"

	"github.com/examwatch/examwatch-backend/internal/common"
	"github.com/examwatch/examwatch-backend/internal/middleware"
	"github.com/examwatch/examwatch-backend/internal/search"
	"github.com/examwatch/examwatch-backend/internal/seo"
	"github.com/gin-gonic/gin"
)

// SearchHandler serves the search page and the search API
type SearchHandler struct {
	querySvc search.QueryService
	seo      *seo.Builder
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(querySvc search.QueryService, seoBuilder *seo.Builder) *SearchHandler {
	return &SearchHandler{querySvc: querySvc, seo: seoBuilder}
}

// recordingNavigator captures the controller's replace-navigation target so
// the rendered page can expose it as its canonical-relative URL.
type recordingNavigator struct {
	url string
}

func (n *recordingNavigator) Replace(u string) { n.url = u }

// SearchPage renders the server-side search page
// GET /search?q=keyword&page=2
func (h *SearchHandler) SearchPage(c *gin.Context) {
	nav := &recordingNavigator{}
	ctrl := search.NewController(h.querySvc, nav)
	ctrl.Initialize(c.Request.Context(), c.Request.URL.Query())
	state := ctrl.State()

	jsonLD, err := h.seo.SearchResultsPage(state.Query, state.Page)
	if err != nil {
		jsonLD = ""
	}

	c.HTML(http.StatusOK, "search.html", gin.H{
		"State":        state,
		"TotalPages":   state.TotalPages(),
		"HasPrev":      state.HasPrev(),
		"HasNext":      state.HasNext(),
		"PrevURL":      search.BuildURL(state.Query, state.Page-1),
		"NextURL":      search.BuildURL(state.Query, state.Page+1),
		"CanonicalURL": h.seo.CanonicalSearchURL(state.Query, state.Page),
		"JSONLD":       template.JS(jsonLD),
	})
}

// Search answers paginated keyword queries
// @Summary Search exam notifications
// @Description Case-insensitive substring search over title and short description. Empty q lists all published posts.
// @Tags search
// @Produce json
// @Param q query string false "Search keyword"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} common.APIResponse{data=[]domain.PostSummary}
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	query, page := search.ParseParams(c.Request.URL.Query())

	ctrl := search.NewController(h.querySvc, &recordingNavigator{})
	ctrl.Search(c.Request.Context(), query, page)
	state := ctrl.State()

	if len(state.Results) > 0 {
		middleware.CountSearch("hit")
	} else {
		middleware.CountSearch("empty")
	}

	common.SuccessResponse(c, state.Results, &common.Meta{
		Query:      state.Query,
		Page:       state.Page,
		Limit:      search.PageSize,
		Total:      state.TotalCount,
		TotalPages: state.TotalPages(),
	})
}
