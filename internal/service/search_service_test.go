package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postsFixture(n int) []*domain.Post {
	now := time.Now()
	out := make([]*domain.Post, n)
	for i := range out {
		out[i] = &domain.Post{
			ID:          uint64(i + 1),
			Slug:        "post",
			Title:       "UPSC Notification",
			Published:   true,
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestSearchPosts_Success(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewSearchService(repo, nil)

	repo.On("Search", mock.Anything, "upsc", 1, 10).Return(postsFixture(10), int64(23), nil)

	results, total, err := svc.SearchPosts(context.Background(), "upsc", 1, 10)
	require.NoError(t, err)

	assert.Len(t, results, 10)
	assert.Equal(t, int64(23), total)
	// Content never leaks into the search projection
	assert.Equal(t, "UPSC Notification", results[0].Title)
	repo.AssertExpectations(t)
}

func TestSearchPosts_NormalizesPage(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewSearchService(repo, nil)

	repo.On("Search", mock.Anything, "", 1, 10).Return(postsFixture(3), int64(3), nil)

	_, _, err := svc.SearchPosts(context.Background(), "", 0, 10)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSearchPosts_RepoErrorPropagates(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewSearchService(repo, nil)

	repo.On("Search", mock.Anything, "upsc", 1, 10).Return(nil, int64(0), errors.New("db down"))

	results, total, err := svc.SearchPosts(context.Background(), "upsc", 1, 10)
	assert.Error(t, err)
	assert.Nil(t, results)
	assert.Zero(t, total)
}
