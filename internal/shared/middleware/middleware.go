package middleware

import (
	"net/http"
	"strings"
	"time"

	"lagoona/internal/auth"
	"lagoona/internal/shared/utils/response"
	"lagoona/internal/users"
	"lagoona/pkg/logger"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and stores the claims on the context
func JWTAuth(authService auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", "UNAUTHORIZED")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization header format", "UNAUTHORIZED")
			c.Abort()
			return
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid access token", c.ClientIP())
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRole allows only the given roles past
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED")
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		for _, allowed := range roles {
			if roleStr == allowed {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "Insufficient permissions", "FORBIDDEN")
		c.Abort()
	}
}

// RequireAdmin allows only ADMIN accounts past
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(users.RoleAdmin)
}

// RequireStaff allows any staff role past
func RequireStaff() gin.HandlerFunc {
	return RequireRole(users.RoleAdmin, users.RoleManager)
}

// RequestLogger logs each request with latency and status
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}
