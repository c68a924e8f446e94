package respond

import (
	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/shared/telemetry"
)

const (
	CodeValidation = "validation_error"
	CodeInternal   = "internal"
	CodeNotFound   = "not_found"
)

// ErrorResponse is the wire shape for every failed request. Clients key on Error.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error logs the failure and aborts the request with a standardized error body.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}
