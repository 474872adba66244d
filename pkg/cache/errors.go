package cache

import (
	"errors"
	"fmt"
)

type CacheError struct {
	Store     string
	Operation string
	Key       string
	Err       error
	Retryable bool
}

func NewCacheError(store, operation, key string, err error, retryable bool) *CacheError {
	return &CacheError{
		Store:     store,
		Operation: operation,
		Key:       key,
		Err:       err,
		Retryable: retryable,
	}
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("%s cache operation %s failed: key=%s: %v", e.Store, e.Operation, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err signals a cache miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
