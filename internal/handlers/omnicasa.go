package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"omnicasa-gateway/internal/errors"
	"omnicasa-gateway/internal/models"
	"omnicasa-gateway/internal/services"
	"omnicasa-gateway/pkg/omnicasa"

	"github.com/gin-gonic/gin"
)

type OmnicasaHandler struct {
	gatewayService *services.GatewayService
}

func NewOmnicasaHandler(gatewayService *services.GatewayService) *OmnicasaHandler {
	return &OmnicasaHandler{gatewayService: gatewayService}
}

// Get godoc
// @Summary Call an Omnicasa operation
// @Description Query string values are forwarded as string parameters
// @Tags Omnicasa
// @Produce json
// @Param endpoint path string true "Operation name, e.g. GetPropertyList"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /omnicasa/{endpoint} [get]
func (h *OmnicasaHandler) Get(c *gin.Context) {
	h.call(c, &models.EndpointRequest{
		Endpoint: c.Param("endpoint"),
		Params:   queryParams(c.Request.URL.Query()),
	})
}

// Post godoc
// @Summary Call an Omnicasa operation with a JSON parameter object
// @Tags Omnicasa
// @Accept json
// @Produce json
// @Param endpoint path string true "Operation name"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /omnicasa/{endpoint} [post]
func (h *OmnicasaHandler) Post(c *gin.Context) {
	params, err := bodyParams(c.Request.Body)
	if err != nil {
		c.Error(err)
		return
	}
	h.call(c, &models.EndpointRequest{Endpoint: c.Param("endpoint"), Params: params})
}

func (h *OmnicasaHandler) call(c *gin.Context, req *models.EndpointRequest) {
	resp, err := h.gatewayService.Call(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.DataResponse{
		Data:     resp.Payload,
		Cached:   resp.FromCache,
		CacheKey: resp.CacheKey,
	})
}

// Invalidate drops the cached response of an operation called with the query string parameters.
func (h *OmnicasaHandler) Invalidate(c *gin.Context) {
	out, err := h.gatewayService.Invalidate(c.Request.Context(), &models.EndpointRequest{
		Endpoint: c.Param("endpoint"),
		Params:   queryParams(c.Request.URL.Query()),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteCacheKey removes one cache entry by its hash.
func (h *OmnicasaHandler) DeleteCacheKey(c *gin.Context) {
	if err := h.gatewayService.DeleteKey(c.Request.Context(), &models.CacheKeyRequest{Key: c.Param("key")}); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// queryParams keeps the first value of each query parameter.
func queryParams(values url.Values) omnicasa.Params {
	params := make(omnicasa.Params, len(values))
	for key, vs := range values {
		if len(vs) > 0 {
			params[key] = vs[0]
		}
	}
	return params
}

// bodyParams decodes a JSON object body. An empty body yields no parameters.
func bodyParams(body io.Reader) (omnicasa.Params, error) {
	params := omnicasa.Params{}
	if body == nil {
		return params, nil
	}
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&params); err != nil {
		if err == io.EOF {
			return omnicasa.Params{}, nil
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidBody, err)
	}
	return params, nil
}
