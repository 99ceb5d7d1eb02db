package seo

import (
	"encoding/json"
	"fmt"

	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/examwatch/examwatch-backend/internal/search"
)

// Builder produces schema.org JSON-LD blocks for rendered pages
type Builder struct {
	baseURL   string
	siteTitle string
}

// NewBuilder creates a Builder; baseURL must not end with a slash
func NewBuilder(baseURL, siteTitle string) *Builder {
	return &Builder{baseURL: baseURL, siteTitle: siteTitle}
}

// CanonicalSearchURL returns the canonical URL for a search state
func (b *Builder) CanonicalSearchURL(query string, page int) string {
	return b.baseURL + search.BuildURL(query, page)
}

// SearchResultsPage builds the JSON-LD block for the search page. Title and
// description derive from the query; the canonical URL encodes (query, page).
func (b *Builder) SearchResultsPage(query string, page int) (string, error) {
	name := "Latest Exam Notifications"
	description := fmt.Sprintf("Browse the latest exam notifications on %s", b.siteTitle)
	if query != "" {
		name = fmt.Sprintf("Search results for %q", query)
		description = fmt.Sprintf("Exam notifications matching %q on %s", query, b.siteTitle)
	}

	block := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "SearchResultsPage",
		"name":        name,
		"description": description,
		"url":         b.CanonicalSearchURL(query, page),
	}
	return marshal(block)
}

// NewsArticle builds the JSON-LD block for a post detail page
func (b *Builder) NewsArticle(post *domain.PostResponse) (string, error) {
	block := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "NewsArticle",
		"headline":      post.Title,
		"datePublished": post.PublishedAt,
		"dateModified":  post.UpdatedAt,
		"url":           fmt.Sprintf("%s/posts/%s", b.baseURL, post.Slug),
		"publisher": map[string]interface{}{
			"@type": "Organization",
			"name":  b.siteTitle,
			"url":   b.baseURL,
		},
	}
	if post.ShortDescription != nil {
		block["description"] = *post.ShortDescription
	}
	return marshal(block)
}

func marshal(block map[string]interface{}) (string, error) {
	data, err := json.Marshal(block)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
