package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/examwatch/examwatch-backend/internal/common"
	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/examwatch/examwatch-backend/internal/repository"
	"github.com/examwatch/examwatch-backend/pkg/cache"
	"github.com/examwatch/examwatch-backend/pkg/logger"
	"github.com/google/uuid"
)

const recentLimit = 10

// PostService business logic for posts
type PostService interface {
	GetPost(ctx context.Context, slug string) (*domain.PostResponse, error)
	ListRecent(ctx context.Context) ([]domain.PostSummary, error)
	CreatePost(ctx context.Context, req *domain.CreatePostRequest) (*domain.PostResponse, error)
	UpdatePost(ctx context.Context, id uint64, req *domain.UpdatePostRequest) (*domain.PostResponse, error)
	DeletePost(ctx context.Context, id uint64) error
}

type postService struct {
	repo  repository.PostRepository
	cache cache.Service
}

// NewPostService creates a new PostService
func NewPostService(repo repository.PostRepository, cacheService cache.Service) PostService {
	return &postService{repo: repo, cache: cacheService}
}

// GetPost retrieves a published post by slug with its body rendered to HTML
func (s *postService) GetPost(ctx context.Context, slug string) (*domain.PostResponse, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetPost(ctx, slug); err == nil {
			var cached domain.PostResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, common.ErrPostNotFound
	}

	resp, err := s.toResponse(post)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPost(ctx, slug, resp); err != nil {
			logger.GetLogger().Warn().Err(err).Str("slug", slug).Msg("failed to cache post")
		}
	}

	return resp, nil
}

// ListRecent returns the latest published posts for the front page
func (s *postService) ListRecent(ctx context.Context) ([]domain.PostSummary, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetRecent(ctx); err == nil {
			var cached []domain.PostSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	posts, err := s.repo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.PostSummary, len(posts))
	for i, post := range posts {
		summaries[i] = post.Summary()
	}

	if s.cache != nil {
		if err := s.cache.SetRecent(ctx, summaries); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("failed to cache recent posts")
		}
	}

	return summaries, nil
}

// CreatePost creates a post, generating a unique slug when needed
func (s *postService) CreatePost(ctx context.Context, req *domain.CreatePostRequest) (*domain.PostResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		if req.Slug != "" {
			return nil, common.ErrSlugTaken
		}
		slug = slug + "-" + uuid.New().String()[:8]
	}

	post := &domain.Post{
		Slug:             slug,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		Published:        req.Published,
		PublishAfter:     req.PublishAfter,
	}
	if post.Published {
		post.PublishedAt = time.Now()
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return s.toResponse(post)
}

// UpdatePost applies a partial update to a post
func (s *postService) UpdatePost(ctx context.Context, id uint64, req *domain.UpdatePostRequest) (*domain.PostResponse, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.ShortDescription != nil {
		post.ShortDescription = req.ShortDescription
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.PublishAfter != nil {
		post.PublishAfter = req.PublishAfter
	}
	if req.Published != nil && *req.Published != post.Published {
		post.Published = *req.Published
		if post.Published {
			post.PublishedAt = time.Now()
		}
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	if s.cache != nil {
		_ = s.cache.InvalidatePost(ctx, post.Slug)
	}

	return s.toResponse(post)
}

// DeletePost removes a post
func (s *postService) DeletePost(ctx context.Context, id uint64) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	if s.cache != nil {
		_ = s.cache.InvalidatePost(ctx, post.Slug)
	}
	return nil
}

func (s *postService) toResponse(post *domain.Post) (*domain.PostResponse, error) {
	contentHTML, err := renderMarkdown(post.Content)
	if err != nil {
		return nil, err
	}
	return &domain.PostResponse{
		ID:               post.ID,
		Slug:             post.Slug,
		Title:            post.Title,
		ShortDescription: post.ShortDescription,
		ContentHTML:      contentHTML,
		PublishedAt:      post.PublishedAt,
		UpdatedAt:        post.UpdatedAt,
	}, nil
}

// invalidateListings drops every cache entry derived from the post listing
func (s *postService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateSearchPages(ctx)
	_ = s.cache.InvalidateRecent(ctx)
	_ = s.cache.InvalidateSitemaps(ctx)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a title
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = uuid.New().String()[:8]
	}
	if len(slug) > 190 {
		slug = slug[:190]
	}
	return slug
}
