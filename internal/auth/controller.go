package auth

import (
	"errors"
	"net/http"

	"lagoona/internal/shared/utils/response"
	"lagoona/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{service: service, log: logger.GetDefault()}
}

// Login authenticates a staff user and returns a token pair
func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	result, err := ctrl.service.Login(req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			ctrl.log.LogAuthFailure(c.Request.Context(), "invalid credentials", c.ClientIP())
			response.Error(c, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
			return
		}
		ctrl.log.LogHTTPError(c, err, http.StatusServiceUnavailable)
		response.StoreUnavailable(c)
		return
	}

	ctrl.log.LogAuthSuccess(c.Request.Context(), result.User.ID.String(), "password")
	response.Success(c, "Login successful", result)
}

// Refresh exchanges a refresh token for a new token pair
func (ctrl *Controller) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	tokens, err := ctrl.service.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token", "INVALID_TOKEN")
			return
		}
		response.StoreUnavailable(c)
		return
	}

	response.Success(c, "Token refreshed", tokens)
}

// ChangePassword updates the authenticated user's password
func (ctrl *Controller) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
		return
	}

	userIDValue, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED")
		return
	}
	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED")
		return
	}

	if err := ctrl.service.ChangePassword(userID, req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Current password is incorrect", "INVALID_CREDENTIALS")
			return
		}
		response.StoreUnavailable(c)
		return
	}

	response.Success(c, "Password changed", nil)
}
