package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/omnicasa"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	type endpointOnly struct {
		Endpoint string `validate:"required"`
	}
	type limitOnly struct {
		Limit int `validate:"gte=1"`
	}
	v := validator.New()

	existing := NewAppError("tech", "user", ErrCodeRateLimited, http.StatusTooManyRequests, nil)

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"app error passes through", fmt.Errorf("wrapped: %w", existing), ErrCodeRateLimited, http.StatusTooManyRequests},
		{"invalid endpoint", v.Struct(endpointOnly{}), ErrCodeInvalidEndpoint, http.StatusBadRequest},
		{"invalid parameter", v.Struct(limitOnly{}), ErrCodeInvalidParameters, http.StatusBadRequest},
		{"invalid body", fmt.Errorf("decode: %w", ErrInvalidBody), ErrCodeInvalidParameters, http.StatusBadRequest},
		{"declared api failure", &omnicasa.APIError{Endpoint: "GetPersonJson", Code: 2, Message: "Invalid customer"}, ErrCodeUpstreamError, http.StatusBadGateway},
		{"cache miss", cache.NewCacheError("redis", "delete", "k", cache.ErrNotFound, false), ErrCodeNotFound, http.StatusNotFound},
		{"cache failure", cache.NewCacheError("redis", "get", "k", stderrors.New("dial tcp"), true), ErrCodeCacheUnavailable, http.StatusServiceUnavailable},
		{"anything else", stderrors.New("boom"), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
			assert.NotEmpty(t, appErr.UserMessage)
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestAppErrorUnwrap(t *testing.T) {
	root := stderrors.New("root cause")
	appErr := NewAppError("tech", "user", ErrCodeInternal, http.StatusInternalServerError, root)
	assert.ErrorIs(t, appErr, root)
	assert.Equal(t, "user: root cause", appErr.Error())
}
