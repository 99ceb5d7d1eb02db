package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/examwatch/examwatch-backend/internal/common"
	"github.com/examwatch/examwatch-backend/internal/config"
	"github.com/examwatch/examwatch-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// AuthHandler issues admin tokens
type AuthHandler struct {
	admin      config.AdminConfig
	jwtManager *jwt.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(admin config.AdminConfig, jwtManager *jwt.Manager) *AuthHandler {
	return &AuthHandler{admin: admin, jwtManager: jwtManager}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the admin account and returns a JWT
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} common.APIResponse
// @Failure 401 {object} common.APIResponse
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.admin.Password)) == 1
	if h.admin.Username == "" || !userOK || !passOK {
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.jwtManager.Generate(h.admin.Username, h.admin.Username, "admin")
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	common.SuccessResponse(c, gin.H{"token": token}, nil)
}
