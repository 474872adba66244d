package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"omnicasa-gateway/pkg/metrics"

	"github.com/go-sql-driver/mysql"
)

// ParseDSN validates dsn and normalizes the driver options the cache store relies on.
func ParseDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %v", err)
	}
	cfg.ParseTime = true
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return cfg, nil
}

// Open connects to MySQL and pings it before returning the pool.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL connector: %v", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	err = db.PingContext(ctx)
	metrics.CacheOperationDuration.WithLabelValues("mysql", "ping").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("mysql", "ping").Inc()
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL: %v", err)
	}
	return db, nil
}
