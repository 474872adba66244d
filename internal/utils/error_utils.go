package utils

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"omnicasa-gateway/internal/errors"
	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LogAndMapError logs technical details and returns a user-friendly AppError.
func LogAndMapError(c *gin.Context, err error) *errors.AppError {
	appErr := errors.MapError(err)
	if appErr == nil {
		return nil
	}

	logger.GlobalLogger.Errorf("Request failed: path=%s, method=%s, client_ip=%s, request_id=%s, code=%s, error=%s",
		c.Request.URL.Path,
		c.Request.Method,
		c.ClientIP(),
		c.GetString("request_id"),
		appErr.Code,
		appErr.TechnicalMessage)

	return appErr
}

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}

// IsRetryableError determines if an error is transient and worth retrying.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var cacheErr *cache.CacheError
	if stderrors.As(err, &cacheErr) {
		return cacheErr.Retryable
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.HTTPStatus == http.StatusServiceUnavailable {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection")
}
