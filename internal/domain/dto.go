package domain

import "time"

// PostResponse is the detail projection with the content rendered to
// sanitized HTML.
type PostResponse struct {
	ID               uint64    `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	ShortDescription *string   `json:"short_description,omitempty"`
	ContentHTML      string    `json:"content_html"`
	PublishedAt      time.Time `json:"published_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreatePostRequest admin post creation payload
type CreatePostRequest struct {
	Title            string     `json:"title" binding:"required,max=300"`
	Slug             string     `json:"slug" binding:"omitempty,max=200"`
	ShortDescription *string    `json:"short_description" binding:"omitempty,max=500"`
	Content          string     `json:"content" binding:"required"`
	Published        bool       `json:"published"`
	PublishAfter     *time.Time `json:"publish_after"`
}

// UpdatePostRequest admin post update payload; nil fields are left unchanged
type UpdatePostRequest struct {
	Title            *string    `json:"title" binding:"omitempty,max=300"`
	ShortDescription *string    `json:"short_description" binding:"omitempty,max=500"`
	Content          *string    `json:"content"`
	Published        *bool      `json:"published"`
	PublishAfter     *time.Time `json:"publish_after"`
}
