package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes the standard envelope with the given status code
func RespondJSON(c *gin.Context, statusCode int, message string, data interface{}, apiError *ApiError) {
	c.JSON(statusCode, StandardApiResponse{
		Success: statusCode >= 200 && statusCode < 300,
		Message: message,
		Data:    data,
		Error:   apiError,
	})
}

// Success writes a 200 envelope
func Success(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, http.StatusOK, message, data, nil)
}

// Created writes a 201 envelope
func Created(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, http.StatusCreated, message, data, nil)
}

// Error writes an error envelope with a code string
func Error(c *gin.Context, statusCode int, message, code string) {
	RespondJSON(c, statusCode, message, nil, &ApiError{Code: code})
}

// ValidationFailed writes a 422 envelope carrying per-field messages
func ValidationFailed(c *gin.Context, fields map[string]string) {
	RespondJSON(c, http.StatusUnprocessableEntity, "Validation failed", nil, &ApiError{
		Code:   "VALIDATION_ERROR",
		Fields: fields,
	})
}

// StoreUnavailable writes a 503 envelope for backing-store failures
func StoreUnavailable(c *gin.Context) {
	RespondJSON(c, http.StatusServiceUnavailable, "Service temporarily unable to process the request", nil, &ApiError{
		Code: "STORE_UNAVAILABLE",
	})
}
