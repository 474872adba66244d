package cache

import (
	"context"
	"time"

	"omnicasa-gateway/pkg/logger"
)

// Purger is implemented by stores whose expired entries stay behind until removed.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Purge forwards to the wrapped store when it is a Purger.
func (s *instrumentedStore) Purge(ctx context.Context) (int64, error) {
	p, ok := s.inner.(Purger)
	if !ok {
		return 0, nil
	}
	start := time.Now()
	n, err := p.Purge(ctx)
	s.observe("purge", "", start, err)
	return n, err
}

func purger(s Store) (Purger, bool) {
	if is, ok := s.(*instrumentedStore); ok {
		if _, ok := is.inner.(Purger); !ok {
			return nil, false
		}
	}
	p, ok := s.(Purger)
	return p, ok
}

// PurgeExpired removes expired entries from s every interval until ctx is done.
// It returns immediately for stores that expire entries on their own.
func PurgeExpired(ctx context.Context, s Store, interval time.Duration) {
	p, ok := purger(s)
	if !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Purge(ctx)
			if err == nil && n > 0 {
				logger.GlobalLogger.Debugf("Expired cache entries purged: count=%d", n)
			}
		}
	}
}
