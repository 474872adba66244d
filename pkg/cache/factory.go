package cache

import (
	"context"
	"fmt"

	"omnicasa-gateway/pkg/config"
	"omnicasa-gateway/pkg/database"
)

// NewStore builds the instrumented store selected by cfg.Cache.Driver. The returned
// close function releases any connection the store holds.
func NewStore(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }
	namespace := cfg.Cache.Namespace
	if !ValidNamespace(namespace) {
		return nil, nil, fmt.Errorf("invalid cache namespace %q", namespace)
	}

	switch cfg.Cache.Driver {
	case "", "file":
		s, err := NewFileStore(cfg.Cache.Directory, namespace)
		if err != nil {
			return nil, nil, err
		}
		return Instrument(fileStoreName, s), noop, nil

	case "memory":
		return Instrument("memory", NewMemoryStore()), noop, nil

	case "redis":
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return Instrument(redisStoreName, NewRedisStore(client, namespace)), client.Close, nil

	case "mysql":
		db, err := database.Open(ctx, cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		s, err := NewMySQLStore(db, namespace)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return Instrument(mysqlStoreName, s), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
