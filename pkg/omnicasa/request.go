package omnicasa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/metrics"

	"github.com/avast/retry-go"
	"github.com/imdario/mergo"
)

// Params are the caller-supplied request parameters.
type Params map[string]interface{}

// Request is a fully built call: its URL, the readable form of that URL and its cache key.
type Request struct {
	Endpoint  string
	URL       string
	PrettyURL string
	CacheKey  string
}

// Response is the outcome of Do.
type Response struct {
	Request
	Envelope  Envelope
	Payload   json.RawMessage
	FromCache bool
}

// Endpoint returns name with the Json suffix, appending it only once.
func Endpoint(name string) string {
	if strings.HasSuffix(name, EndpointSuffix) {
		return name
	}
	return name + EndpointSuffix
}

// MakeRequest calls endpoint and returns its unwrapped payload, which is nil when
// the transport failed or the body was not a recognised envelope.
func (c *Client) MakeRequest(ctx context.Context, endpoint string, params Params) (json.RawMessage, error) {
	resp, err := c.Do(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return resp.Payload, nil
}

// BuildRequest signs endpoint and params with the client credentials.
func (c *Client) BuildRequest(endpoint string, params Params) (*Request, error) {
	return c.buildRequest(c.URL(), endpoint, params)
}

func (c *Client) buildRequest(baseURL, endpoint string, params Params) (*Request, error) {
	merged := Params{
		"CustomerName":     c.username,
		"CustomerPassword": c.password,
		"LanguageId":       c.languageID,
	}
	if len(params) > 0 {
		if err := mergo.Merge(&merged, params, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge request parameters: %w", err)
		}
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request parameters: %w", err)
	}

	name := Endpoint(endpoint)
	reqURL := baseURL + name + "?json=" + url.QueryEscape(string(data))
	return &Request{
		Endpoint:  name,
		URL:       reqURL,
		PrettyURL: baseURL + name + "?json=" + string(data),
		CacheKey:  cache.HashKey(reqURL),
	}, nil
}

// Do runs the full request pipeline and reports how the result was obtained.
func (c *Client) Do(ctx context.Context, endpoint string, params Params) (*Response, error) {
	cfg := c.snapshot()
	req, err := c.buildRequest(cfg.baseURL, endpoint, params)
	if err != nil {
		return nil, err
	}
	resp := &Response{Request: *req}

	var store cache.Store
	if cfg.caching {
		if store, err = c.Cache(); err != nil {
			return nil, err
		}
		if Cacheable(req.Endpoint) {
			payload, hit, err := c.cached(ctx, store, req)
			if err != nil {
				return nil, err
			}
			if hit {
				resp.Payload = payload
				resp.FromCache = true
				return resp, nil
			}
		}
	}

	start := time.Now()
	body, fetchErr := c.fetch(ctx, cfg, req)
	metrics.OmnicasaRequestDuration.WithLabelValues(req.Endpoint).Observe(time.Since(start).Seconds())

	if cfg.logger != nil {
		cfg.logger.Printf("%s", req.PrettyURL)
	}

	resp.Envelope = DecodeEnvelope(req.Endpoint, body)
	resp.Payload = resp.Envelope.Payload()
	outcome := "success"
	switch {
	case fetchErr != nil:
		outcome = "transport_error"
	case resp.Envelope.Err() != nil:
		outcome = "api_error"
		logError(cfg.logger, "Omnicasa call declared failure: url=%s, error=%v", req.PrettyURL, resp.Envelope.Err())
	case resp.Envelope.Kind == EnvelopeEmpty:
		outcome = "empty"
	}
	metrics.OmnicasaRequestsTotal.WithLabelValues(req.Endpoint, outcome).Inc()

	if cfg.caching {
		value := []byte(resp.Payload)
		if value == nil {
			value = []byte("null")
		}
		if err := store.Set(ctx, req.CacheKey, value, cfg.cacheTTL); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// cached reads a stored payload. An entry that disappears between the
// existence check and the read counts as a miss.
func (c *Client) cached(ctx context.Context, store cache.Store, req *Request) (json.RawMessage, bool, error) {
	ok, err := store.Exists(ctx, req.CacheKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(req.Endpoint).Inc()
		return nil, false, nil
	}
	value, err := store.Get(ctx, req.CacheKey)
	if errors.Is(err, cache.ErrNotFound) {
		metrics.CacheMissesTotal.WithLabelValues(req.Endpoint).Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	metrics.CacheHitsTotal.WithLabelValues(req.Endpoint).Inc()
	return nullable(value), true, nil
}

// fetch performs the GET. A transport failure is logged and leaves the body nil.
func (c *Client) fetch(ctx context.Context, cfg settings, req *Request) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			resp, err := c.httpClient.R().SetContext(ctx).Get(req.URL)
			if err != nil {
				return err
			}
			body = resp.Body()
			return nil
		},
		retry.Attempts(cfg.retryAttempts),
		retry.Delay(cfg.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(error) bool { return ctx.Err() == nil }),
	)
	if err != nil {
		logError(cfg.logger, "Failed to call Omnicasa: url=%s, error=%v", req.PrettyURL, err)
		return nil, err
	}
	return body, nil
}

func logError(l Logger, format string, v ...interface{}) {
	if el, ok := l.(errorLogger); ok {
		el.Errorf(format, v...)
	}
}
