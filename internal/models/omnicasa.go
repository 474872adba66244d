package models

import (
	"encoding/json"

	"omnicasa-gateway/pkg/omnicasa"
)

// EndpointRequest is a gateway call to one Omnicasa operation.
type EndpointRequest struct {
	Endpoint string          `json:"endpoint" validate:"required,max=128,omnicasa_endpoint"`
	Params   omnicasa.Params `json:"params"`
}

type CacheKeyRequest struct {
	Key string `json:"key" validate:"required,len=32,hexadecimal"`
}

type DataResponse struct {
	Data     json.RawMessage `json:"data"`
	Cached   bool            `json:"cached"`
	CacheKey string          `json:"cache_key"`
}

type InvalidateResponse struct {
	CacheKey string `json:"cache_key"`
	Deleted  bool   `json:"deleted"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
