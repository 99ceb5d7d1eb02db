package middleware

import (
	"errors"
	"strings"

	"github.com/examwatch/examwatch-backend/internal/common"
	"github.com/examwatch/examwatch-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. Verify token
		claims, err := jwtManager.Verify(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		// 4. Store user info in context
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireAdmin rejects requests whose token lacks the admin role.
// Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != "admin" {
			common.ErrorResponse(c, 403, "Admin privileges required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	if str, ok := userID.(string); ok {
		return str
	}
	return ""
}

// GetRole extracts the role from context
func GetRole(c *gin.Context) string {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	if str, ok := role.(string); ok {
		return str
	}
	return ""
}
