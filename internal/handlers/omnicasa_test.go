package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"omnicasa-gateway/internal/middleware"
	"omnicasa-gateway/internal/models"
	"omnicasa-gateway/internal/services"
	"omnicasa-gateway/internal/validators"
	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/omnicasa"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstream struct {
	mu     sync.Mutex
	params map[string]interface{}
	calls  int
}

func (u *upstream) last() (map[string]interface{}, int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.params, u.calls
}

func newTestRouter(t *testing.T, body string) (*gin.Engine, *upstream, *cache.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	up := &upstream{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params map[string]interface{}
		json.Unmarshal([]byte(r.URL.Query().Get("json")), &params)
		up.mu.Lock()
		up.params = params
		up.calls++
		up.mu.Unlock()
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	store := cache.NewMemoryStore()
	client := omnicasa.NewClient("agency", "s3cret", "en", "", omnicasa.WithBaseURL(srv.URL+"/"), omnicasa.WithCache(store))
	svc := services.NewGatewayService(client, store, validators.NewRequestValidator())
	h := NewOmnicasaHandler(svc)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/health", NewHealthHandler(svc).Check)
	r.GET("/api/omnicasa/:endpoint", h.Get)
	r.POST("/api/omnicasa/:endpoint", h.Post)
	r.DELETE("/api/omnicasa/:endpoint", h.Invalidate)
	r.DELETE("/api/cache/:key", h.DeleteCacheKey)
	return r, up, store
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) models.DataResponse {
	t.Helper()
	var resp models.DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetForwardsQueryParams(t *testing.T) {
	r, up, _ := newTestRouter(t, `{"GetPropertyListJsonResult":{"Success":true,"Value":{"Items":[{"ID":3}]}}}`)

	w := do(r, http.MethodGet, "/api/omnicasa/GetPropertyList?City=Gent&Limit1=5&City=Brugge", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeData(t, w)
	assert.JSONEq(t, `[{"ID":3}]`, string(resp.Data))
	assert.False(t, resp.Cached)
	assert.Len(t, resp.CacheKey, 32)

	params, _ := up.last()
	assert.Equal(t, "Gent", params["City"])
	assert.Equal(t, "5", params["Limit1"])
	assert.Equal(t, float64(3), params["LanguageId"])

	w = do(r, http.MethodGet, "/api/omnicasa/GetPropertyList?City=Gent&Limit1=5", "")
	assert.True(t, decodeData(t, w).Cached)
}

func TestPostForwardsBodyParams(t *testing.T) {
	r, up, _ := newTestRouter(t, `{"Value":{"ok":true}}`)

	w := do(r, http.MethodPost, "/api/omnicasa/ContactOnMe", `{"PropertyID":42,"Comment":"call me"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, string(decodeData(t, w).Data))

	params, _ := up.last()
	assert.Equal(t, float64(42), params["PropertyID"])
	assert.Equal(t, "call me", params["Comment"])
}

func TestPostEmptyBody(t *testing.T) {
	r, _, _ := newTestRouter(t, `{"Value":{}}`)
	w := do(r, http.MethodPost, "/api/omnicasa/GetGoalList", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGatewayErrors(t *testing.T) {
	tests := []struct {
		name       string
		upstream   string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"invalid endpoint", `{}`, http.MethodGet, "/api/omnicasa/Get-Goal", "", http.StatusBadRequest, "INVALID_ENDPOINT"},
		{"body not an object", `{}`, http.MethodPost, "/api/omnicasa/GetGoalList", `[1,2]`, http.StatusBadRequest, "INVALID_PARAMETERS"},
		{"declared failure", `{"GetPersonJsonResult":{"Code":2,"Success":false,"Message":"Invalid customer"}}`, http.MethodGet, "/api/omnicasa/GetPerson", "", http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"bad cache key", `{}`, http.MethodDelete, "/api/cache/xyz", "", http.StatusBadRequest, "INVALID_PARAMETERS"},
		{"unknown cache key", `{}`, http.MethodDelete, "/api/cache/0123456789abcdef0123456789abcdef", "", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRouter(t, tt.upstream)
			w := do(r, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestInvalidateAndDeleteCacheKey(t *testing.T) {
	r, up, store := newTestRouter(t, `{"Value":{"a":1}}`)
	ctx := context.Background()

	first := decodeData(t, do(r, http.MethodGet, "/api/omnicasa/GetCityList?ZipCode=9000", ""))

	w := do(r, http.MethodDelete, "/api/omnicasa/GetCityList?ZipCode=9000", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out models.InvalidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, first.CacheKey, out.CacheKey)
	assert.True(t, out.Deleted)

	second := decodeData(t, do(r, http.MethodGet, "/api/omnicasa/GetCityList?ZipCode=9000", ""))
	assert.False(t, second.Cached)
	_, calls := up.last()
	assert.Equal(t, 2, calls)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/cache/"+second.CacheKey, "").Code)
	ok, err := store.Exists(ctx, second.CacheKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t, `{}`)
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","cache":"ok"}`, w.Body.String())
}
