package routes

import (
	"github.com/examwatch/examwatch-backend/internal/handler"
	"github.com/examwatch/examwatch-backend/internal/middleware"
	"github.com/examwatch/examwatch-backend/pkg/cache"
	"github.com/examwatch/examwatch-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all routes: rendered pages, XML endpoints and the JSON API
func Setup(
	router *gin.Engine,
	postHandler *handler.PostHandler,
	searchHandler *handler.SearchHandler,
	authHandler *handler.AuthHandler,
	feedHandler *handler.FeedHandler,
	healthHandler *handler.HealthHandler,
	jwtManager *jwt.Manager,
) {
	// Rendered pages
	router.GET("/", postHandler.HomePage)
	router.GET("/search", searchHandler.SearchPage)
	router.GET("/posts/:slug", postHandler.PostPage)

	// XML endpoints, cacheable by intermediaries
	xml := router.Group("/", middleware.CacheControl(cache.TTLSitemap))
	xml.GET("/sitemap.xml", feedHandler.Sitemap)
	xml.GET("/feed.xml", feedHandler.Feed)

	// Public JSON API
	api := router.Group("/api/v1")
	api.GET("/search", searchHandler.Search)
	api.GET("/posts", postHandler.ListRecent)
	api.GET("/posts/:slug", postHandler.GetPost)

	// Admin JSON API
	admin := api.Group("/admin", middleware.NoStore())
	admin.POST("/login", authHandler.Login)

	protected := admin.Group("", middleware.JWTAuth(jwtManager), middleware.RequireAdmin())
	protected.POST("/posts", postHandler.CreatePost)
	protected.PUT("/posts/:id", postHandler.UpdatePost)
	protected.DELETE("/posts/:id", postHandler.DeletePost)

	// Operational endpoints
	router.GET("/health", healthHandler.Health)
}
