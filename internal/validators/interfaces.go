package validators

import (
	"omnicasa-gateway/internal/models"
)

type RequestValidator interface {
	ValidateEndpoint(req *models.EndpointRequest) error
	ValidateCacheKey(req *models.CacheKeyRequest) error
}
