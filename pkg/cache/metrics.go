package cache

import (
	"context"
	"time"

	"omnicasa-gateway/pkg/logger"
	"omnicasa-gateway/pkg/metrics"
)

// instrumentedStore records duration and error metrics around every call.
type instrumentedStore struct {
	name  string
	inner Store
}

// Instrument wraps s so its operations are observed under the given store label.
func Instrument(name string, s Store) Store {
	return &instrumentedStore{name: name, inner: s}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	val, err := s.inner.Get(ctx, key)
	s.observe("get", key, start, err)
	return val, err
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value, expiration)
	s.observe("set", key, start, err)
	return err
}

func (s *instrumentedStore) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := s.inner.Exists(ctx, key)
	s.observe("exists", key, start, err)
	return ok, err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.observe("delete", key, start, err)
	return err
}

// record the duration of an operation and count it as an error unless it was a plain miss.
func (s *instrumentedStore) observe(operation, key string, start time.Time, err error) {
	metrics.CacheOperationDuration.WithLabelValues(s.name, operation).Observe(time.Since(start).Seconds())
	if err != nil && !IsNotFound(err) {
		logger.GlobalLogger.Errorf("Cache %s failed: store=%s, key=%s, error=%v", operation, s.name, key, err)
		metrics.CacheErrorsTotal.WithLabelValues(s.name, operation).Inc()
	}
}
