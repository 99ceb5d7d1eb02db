package handler

import (
	"net/http"

	"github.com/examwatch/examwatch-backend/pkg/cache"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports process and dependency health
type HealthHandler struct {
	db    *gorm.DB
	cache cache.Service
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, cacheService cache.Service) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheService}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "unavailable"
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "error"
	}

	redisStatus := "ok"
	if h.cache == nil || !h.cache.IsAvailable() {
		redisStatus = "unavailable"
	} else if err := h.cache.Ping(c.Request.Context()); err != nil {
		redisStatus = "error"
	}

	status := http.StatusOK
	if dbStatus == "error" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": "ok",
		"db":     dbStatus,
		"redis":  redisStatus,
	})
}
