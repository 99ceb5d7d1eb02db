package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/examwatch/examwatch-backend/internal/common"
	"github.com/examwatch/examwatch-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository post data access
type PostRepository interface {
	// Queries
	Search(ctx context.Context, query string, page, limit int) ([]*domain.Post, int64, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	FindByID(ctx context.Context, id uint64) (*domain.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Post, error)
	ListPublished(ctx context.Context, limit int) ([]*domain.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Mutations
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uint64) error

	// Scheduled publishing
	PublishDue(ctx context.Context, now time.Time) (int64, error)
}

// postRepository GORM implementation
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Search returns one page of published posts matching the keyword, newest
// first, together with the exact total count. An empty query matches every
// published post. A non-empty query matches case-insensitively as a
// substring of the title or the short description.
func (r *postRepository) Search(ctx context.Context, query string, page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Post{}).Where("published = ?", true)

	keyword := strings.TrimSpace(query)
	if keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(short_description) LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByID(ctx context.Context, id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListPublished returns published posts for the sitemap and feed, newest first
func (r *postRepository) ListPublished(ctx context.Context, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	q := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&posts).Error
	return posts, err
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Post{}, id).Error
}

// PublishDue flips posts whose scheduled publish time has arrived.
// Returns the number of posts published.
func (r *postRepository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("published = ? AND publish_after IS NOT NULL AND publish_after <= ?", false, now).
		Updates(map[string]interface{}{
			"published":    true,
			"published_at": now,
		})
	return res.RowsAffected, res.Error
}
