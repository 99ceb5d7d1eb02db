package domain

import (
	"time"
)

// Post represents an exam notification article
type Post struct {
	ID               uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug             string     `gorm:"column:slug;type:varchar(200);uniqueIndex" json:"slug"`
	Title            string     `gorm:"column:title;type:varchar(300);index" json:"title"`
	ShortDescription *string    `gorm:"column:short_description;type:varchar(500)" json:"short_description,omitempty"`
	Content          string     `gorm:"column:content;type:mediumtext" json:"content,omitempty"`
	Published        bool       `gorm:"column:published;default:false;index" json:"published"`
	PublishedAt      time.Time  `gorm:"column:published_at;index" json:"published_at"`
	PublishAfter     *time.Time `gorm:"column:publish_after" json:"publish_after,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// PostSummary is the list/search projection of a Post. The content body is
// intentionally excluded from list responses.
type PostSummary struct {
	ID               uint64    `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	ShortDescription *string   `json:"short_description,omitempty"`
	PublishedAt      time.Time `json:"published_at"`
}

// Summary returns the list projection of the post.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		PublishedAt:      p.PublishedAt,
	}
}
