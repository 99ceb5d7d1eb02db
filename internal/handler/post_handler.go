package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/examwatch/examwatch-backend/internal/common"
	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/examwatch/examwatch-backend/internal/seo"
	"github.com/examwatch/examwatch-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// PostHandler serves post pages and the posts API
type PostHandler struct {
	postSvc service.PostService
	seo     *seo.Builder
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postSvc service.PostService, seoBuilder *seo.Builder) *PostHandler {
	return &PostHandler{postSvc: postSvc, seo: seoBuilder}
}

// HomePage renders the front page with the latest notifications
// GET /
func (h *PostHandler) HomePage(c *gin.Context) {
	posts, err := h.postSvc.ListRecent(c.Request.Context())
	if err != nil {
		posts = nil
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Posts": posts,
	})
}

// PostPage renders a post detail page
// GET /posts/:slug
func (h *PostHandler) PostPage(c *gin.Context) {
	post, err := h.postSvc.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	jsonLD, err := h.seo.NewsArticle(post)
	if err != nil {
		jsonLD = ""
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"Post":        post,
		"ContentHTML": template.HTML(post.ContentHTML),
		"JSONLD":      template.JS(jsonLD),
	})
}

// ListRecent returns the latest published posts
// @Summary List recent notifications
// @Tags posts
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.PostSummary}
// @Router /posts [get]
func (h *PostHandler) ListRecent(c *gin.Context) {
	posts, err := h.postSvc.ListRecent(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load posts", err)
		return
	}
	common.SuccessResponse(c, posts, nil)
}

// GetPost returns a single published post
// @Summary Get a notification by slug
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} common.APIResponse{data=domain.PostResponse}
// @Failure 404 {object} common.APIResponse
// @Router /posts/{slug} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postSvc.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load post", err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// CreatePost creates a notification
// @Summary Create a notification
// @Tags admin
// @Accept json
// @Produce json
// @Param request body domain.CreatePostRequest true "Post payload"
// @Success 200 {object} common.APIResponse{data=domain.PostResponse}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /admin/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.postSvc.CreatePost(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, common.ErrSlugTaken) {
			common.ErrorResponse(c, http.StatusConflict, "Slug already in use", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create post", err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// UpdatePost updates a notification
// @Summary Update a notification
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body domain.UpdatePostRequest true "Fields to change"
// @Success 200 {object} common.APIResponse{data=domain.PostResponse}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /admin/posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", err)
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.postSvc.UpdatePost(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update post", err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// DeletePost removes a notification
// @Summary Delete a notification
// @Tags admin
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /admin/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", err)
		return
	}

	if err := h.postSvc.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete post", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id}, nil)
}
