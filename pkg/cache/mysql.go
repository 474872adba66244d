package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const mysqlStoreName = "mysql"

// MySQLStore keeps entries in a table named after the namespace.
type MySQLStore struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

// NewMySQLStore returns a store backed by db. Call Migrate once to create the table.
func NewMySQLStore(db *sql.DB, namespace string) (*MySQLStore, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if !ValidNamespace(namespace) {
		return nil, fmt.Errorf("invalid cache namespace %q", namespace)
	}
	return &MySQLStore{db: db, table: namespace, now: time.Now}, nil
}

// Migrate creates the backing table if it does not exist.
func (s *MySQLStore) Migrate(ctx context.Context) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"cache_key VARCHAR(191) NOT NULL PRIMARY KEY, "+
		"value LONGBLOB NOT NULL, "+
		"expires_at BIGINT NOT NULL DEFAULT 0, "+
		"INDEX idx_expires_at (expires_at))", s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return NewCacheError(mysqlStoreName, "migrate", "", err, false)
	}
	return nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	var expiresAt int64
	if expiration > 0 {
		// expires_at has second precision; round up so short TTLs still live out their duration
		deadline := s.now().Add(expiration)
		expiresAt = deadline.Unix()
		if deadline.Nanosecond() > 0 {
			expiresAt++
		}
	}
	if value == nil {
		value = []byte{}
	}
	query := fmt.Sprintf("INSERT INTO `%s` (cache_key, value, expires_at) VALUES (?, ?, ?) "+
		"ON DUPLICATE KEY UPDATE value = VALUES(value), expires_at = VALUES(expires_at)", s.table)
	if _, err := s.db.ExecContext(ctx, query, key, value, expiresAt); err != nil {
		return NewCacheError(mysqlStoreName, "set", key, err, true)
	}
	return nil
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf("SELECT value FROM `%s` WHERE cache_key = ? AND (expires_at = 0 OR expires_at > ?)", s.table)
	var value []byte
	err := s.db.QueryRowContext(ctx, query, key, s.now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewCacheError(mysqlStoreName, "get", key, err, true)
	}
	return value, nil
}

func (s *MySQLStore) Exists(ctx context.Context, key string) (bool, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM `%s` WHERE cache_key = ? AND (expires_at = 0 OR expires_at > ?)", s.table)
	var count int
	if err := s.db.QueryRowContext(ctx, query, key, s.now().Unix()).Scan(&count); err != nil {
		return false, NewCacheError(mysqlStoreName, "exists", key, err, true)
	}
	return count > 0, nil
}

func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM `%s` WHERE cache_key = ?", s.table)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return NewCacheError(mysqlStoreName, "delete", key, err, true)
	}
	return nil
}

// Purge removes expired rows and returns how many were deleted.
func (s *MySQLStore) Purge(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("DELETE FROM `%s` WHERE expires_at > 0 AND expires_at <= ?", s.table)
	res, err := s.db.ExecContext(ctx, query, s.now().Unix())
	if err != nil {
		return 0, NewCacheError(mysqlStoreName, "purge", "", err, true)
	}
	return res.RowsAffected()
}
