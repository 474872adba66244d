package errors

import (
	stderrors "errors"
	"net/http"

	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/omnicasa"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidBody marks a request body that is not a JSON object.
var ErrInvalidBody = stderrors.New("request body must be a JSON object")

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()
	build := func(userMessage, code string, status int) *AppError {
		return NewAppError(technicalMessage, userMessage, code, status, err)
	}

	var (
		validationErrs validator.ValidationErrors
		apiErr         *omnicasa.APIError
		cacheErr       *cache.CacheError
	)
	switch {
	case stderrors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			if fe.Field() == "Endpoint" {
				return build(MsgInvalidEndpoint, ErrCodeInvalidEndpoint, http.StatusBadRequest)
			}
		}
		return build(MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest)
	case stderrors.Is(err, ErrInvalidBody):
		return build(MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest)
	case stderrors.As(err, &apiErr):
		return build(apiErr.Message, ErrCodeUpstreamError, http.StatusBadGateway)
	case stderrors.Is(err, cache.ErrNotFound):
		return build(MsgNotFound, ErrCodeNotFound, http.StatusNotFound)
	case stderrors.As(err, &cacheErr):
		return build(MsgCacheUnavailable, ErrCodeCacheUnavailable, http.StatusServiceUnavailable)
	default:
		return build(MsgInternalError, ErrCodeInternal, http.StatusInternalServerError)
	}
}
