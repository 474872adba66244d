package services

import (
	"context"
	"fmt"

	"omnicasa-gateway/internal/models"
	"omnicasa-gateway/internal/utils"
	"omnicasa-gateway/internal/validators"
	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/logger"
	"omnicasa-gateway/pkg/omnicasa"
)

// healthProbeKey is looked up by Health; it is never written.
const healthProbeKey = "health_probe"

// OmnicasaAPI is the part of *omnicasa.Client the gateway depends on.
type OmnicasaAPI interface {
	Do(ctx context.Context, endpoint string, params omnicasa.Params) (*omnicasa.Response, error)
	BuildRequest(endpoint string, params omnicasa.Params) (*omnicasa.Request, error)
}

type GatewayService struct {
	client    OmnicasaAPI
	store     cache.Store
	validator validators.RequestValidator
}

func NewGatewayService(client OmnicasaAPI, store cache.Store, validator validators.RequestValidator) *GatewayService {
	return &GatewayService{
		client:    client,
		store:     store,
		validator: validator,
	}
}

// Call forwards req to Omnicasa. A failure declared by Omnicasa is returned as
// an *omnicasa.APIError alongside the response, and its cached payload is
// dropped so the next identical call reaches Omnicasa again.
func (s *GatewayService) Call(ctx context.Context, req *models.EndpointRequest) (*omnicasa.Response, error) {
	if err := s.validator.ValidateEndpoint(req); err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, req.Endpoint, req.Params)
	if err != nil {
		logger.GlobalLogger.Errorf("Omnicasa request failed: endpoint=%s, error=%v", req.Endpoint, err)
		return nil, utils.WrapError(err, "failed to call %s", req.Endpoint)
	}
	if apiErr := resp.Envelope.Err(); apiErr != nil {
		if err := s.store.Delete(ctx, resp.CacheKey); err != nil {
			logger.GlobalLogger.Errorf("Failed to drop failed response: endpoint=%s, key=%s, error=%v", req.Endpoint, resp.CacheKey, err)
		}
		return resp, apiErr
	}
	return resp, nil
}

// Invalidate removes the cached response for req and returns its key. Deleted
// is false when nothing was cached.
func (s *GatewayService) Invalidate(ctx context.Context, req *models.EndpointRequest) (*models.InvalidateResponse, error) {
	if err := s.validator.ValidateEndpoint(req); err != nil {
		return nil, err
	}

	built, err := s.client.BuildRequest(req.Endpoint, req.Params)
	if err != nil {
		return nil, err
	}
	deleted, err := s.delete(ctx, built.CacheKey)
	if err != nil {
		return nil, err
	}
	return &models.InvalidateResponse{CacheKey: built.CacheKey, Deleted: deleted}, nil
}

// DeleteKey removes a cache entry by its hash. A missing entry is cache.ErrNotFound.
func (s *GatewayService) DeleteKey(ctx context.Context, req *models.CacheKeyRequest) error {
	if err := s.validator.ValidateCacheKey(req); err != nil {
		return err
	}
	deleted, err := s.delete(ctx, req.Key)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("cache key %s: %w", req.Key, cache.ErrNotFound)
	}
	return nil
}

func (s *GatewayService) delete(ctx context.Context, key string) (bool, error) {
	ok, err := s.store.Exists(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return false, err
	}
	logger.GlobalLogger.Printf("Cache entry invalidated: key=%s", key)
	return true, nil
}

// Health verifies the cache store answers.
func (s *GatewayService) Health(ctx context.Context) error {
	if _, err := s.store.Exists(ctx, healthProbeKey); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}
	return nil
}
