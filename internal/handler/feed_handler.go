package handler

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/examwatch/examwatch-backend/internal/config"
	"github.com/examwatch/examwatch-backend/internal/repository"
	"github.com/examwatch/examwatch-backend/pkg/cache"
	"github.com/examwatch/examwatch-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

const feedLimit = 50

// FeedHandler serves the sitemap and RSS feed XML endpoints
type FeedHandler struct {
	repo  repository.PostRepository
	cache cache.Service
	site  config.SiteConfig
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(repo repository.PostRepository, cacheService cache.Service, site config.SiteConfig) *FeedHandler {
	return &FeedHandler{repo: repo, cache: cacheService, site: site}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap serves sitemap.xml over all published posts
// GET /sitemap.xml
func (h *FeedHandler) Sitemap(c *gin.Context) {
	h.serveXML(c, "sitemap", h.buildSitemap)
}

func (h *FeedHandler) buildSitemap(ctx context.Context) ([]byte, error) {
	posts, err := h.repo.ListPublished(ctx, 0)
	if err != nil {
		return nil, err
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.site.BaseURL + "/"},
			{Loc: h.site.BaseURL + "/search"},
		},
	}
	for _, post := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/posts/%s", h.site.BaseURL, post.Slug),
			LastMod: post.UpdatedAt.Format("2006-01-02"),
		})
	}

	return xml.MarshalIndent(set, "", "  ")
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// Feed serves the RSS feed of the latest notifications
// GET /feed.xml
func (h *FeedHandler) Feed(c *gin.Context) {
	h.serveXML(c, "feed", h.buildFeed)
}

func (h *FeedHandler) buildFeed(ctx context.Context) ([]byte, error) {
	posts, err := h.repo.ListPublished(ctx, feedLimit)
	if err != nil {
		return nil, err
	}

	channel := rssChannel{
		Title:       h.site.Title,
		Link:        h.site.BaseURL,
		Description: h.site.Description,
	}
	for _, post := range posts {
		item := rssItem{
			Title:   post.Title,
			Link:    fmt.Sprintf("%s/posts/%s", h.site.BaseURL, post.Slug),
			PubDate: post.PublishedAt.Format(time.RFC1123Z),
			GUID:    fmt.Sprintf("%s/posts/%s", h.site.BaseURL, post.Slug),
		}
		if post.ShortDescription != nil {
			item.Description = *post.ShortDescription
		}
		channel.Items = append(channel.Items, item)
	}

	return xml.MarshalIndent(rssFeed{Version: "2.0", Channel: channel}, "", "  ")
}

// serveXML serves a cached XML document, rebuilding it on cache miss
func (h *FeedHandler) serveXML(c *gin.Context, name string, build func(context.Context) ([]byte, error)) {
	if h.cache != nil && h.cache.IsAvailable() {
		if data, err := h.cache.GetSitemap(c.Request.Context(), name); err == nil {
			c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
			return
		}
	}

	data, err := build(c.Request.Context())
	if err != nil {
		logger.GetLogger().Error().Err(err).Str("document", name).Msg("failed to build XML document")
		c.Status(http.StatusInternalServerError)
		return
	}
	data = append([]byte(xml.Header), data...)

	if h.cache != nil {
		if err := h.cache.SetSitemap(c.Request.Context(), name, data); err != nil {
			logger.GetLogger().Warn().Err(err).Str("document", name).Msg("failed to cache XML document")
		}
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}
