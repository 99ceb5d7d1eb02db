package service

import (
	"context"
	"encoding/json"

	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/examwatch/examwatch-backend/internal/repository"
	"github.com/examwatch/examwatch-backend/pkg/cache"
	"github.com/examwatch/examwatch-backend/pkg/logger"
)

// SearchService answers paginated keyword queries over published posts.
// It implements search.QueryService and caches result pages briefly in Redis.
type SearchService struct {
	repo  repository.PostRepository
	cache cache.Service
}

// NewSearchService creates a new SearchService
func NewSearchService(repo repository.PostRepository, cacheService cache.Service) *SearchService {
	return &SearchService{repo: repo, cache: cacheService}
}

// searchPage is the cached form of one result page
type searchPage struct {
	Results []domain.PostSummary `json:"results"`
	Total   int64                `json:"total"`
}

// SearchPosts returns one page of matches plus the exact total count.
// Cache errors degrade to a direct repository query.
func (s *SearchService) SearchPosts(ctx context.Context, query string, page, limit int) ([]domain.PostSummary, int64, error) {
	if page < 1 {
		page = 1
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetSearchPage(ctx, query, page); err == nil {
			var cached searchPage
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.Results, cached.Total, nil
			}
		}
	}

	posts, total, err := s.repo.Search(ctx, query, page, limit)
	if err != nil {
		return nil, 0, err
	}

	results := make([]domain.PostSummary, len(posts))
	for i, post := range posts {
		results[i] = post.Summary()
	}

	if s.cache != nil {
		if err := s.cache.SetSearchPage(ctx, query, page, searchPage{Results: results, Total: total}); err != nil {
			logger.GetLogger().Warn().Err(err).Str("query", query).Msg("failed to cache search page")
		}
	}

	return results, total, nil
}
