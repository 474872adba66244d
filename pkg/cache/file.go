package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"
)

const fileStoreName = "file"

// fileEntry is the on-disk envelope; ExpiresAt is unix nanoseconds, zero for no deadline.
type fileEntry struct {
	ExpiresAt int64  `json:"expires_at"`
	Value     []byte `json:"value"`
}

// FileStore is a filesystem-backed Store. Writes go through a temp file and a
// rename, so concurrent readers in other processes never see partial entries.
// Entries are stored under the MD5 of their key, the layout diskcache reads.
type FileStore struct {
	dir  string
	d    *diskv.Diskv
	disk *diskcache.Cache
	now  func() time.Time
}

// NewFileStore roots a store at baseDir/namespace, creating it if necessary.
func NewFileStore(baseDir, namespace string) (*FileStore, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if !ValidNamespace(namespace) {
		return nil, fmt.Errorf("invalid cache namespace %q", namespace)
	}
	if baseDir == "" {
		baseDir = os.TempDir()
	}

	dir := filepath.Join(baseDir, namespace)
	tmp := filepath.Join(dir, ".tmp")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	d := diskv.New(diskv.Options{
		BasePath: dir,
		TempDir:  tmp,
		// entries are shared with other processes, so never serve from memory
		CacheSizeMax: 0,
	})

	return &FileStore{
		dir:  dir,
		d:    d,
		disk: diskcache.NewWithDiskv(d),
		now:  time.Now,
	}, nil
}

// Dir returns the directory holding the entries.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok, err := s.read(key)
	if err != nil {
		return nil, NewCacheError(fileStoreName, "get", key, err, false)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return entry.Value, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	entry := fileEntry{Value: value}
	if expiration > 0 {
		entry.ExpiresAt = s.now().Add(expiration).UnixNano()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return NewCacheError(fileStoreName, "marshal", key, err, false)
	}
	if err := s.d.WriteStream(HashKey(key), bytes.NewReader(data), true); err != nil {
		return NewCacheError(fileStoreName, "set", key, err, false)
	}
	return nil
}

func (s *FileStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok, err := s.read(key)
	if err != nil {
		return false, NewCacheError(fileStoreName, "exists", key, err, false)
	}
	return ok, nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := s.d.Erase(HashKey(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewCacheError(fileStoreName, "delete", key, err, false)
	}
	return nil
}

// read loads an entry, evicting it when its deadline has passed.
func (s *FileStore) read(key string) (fileEntry, bool, error) {
	var entry fileEntry
	data, ok := s.disk.Get(key)
	if !ok {
		return entry, false, nil
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		s.disk.Delete(key)
		return entry, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if entry.ExpiresAt != 0 && s.now().UnixNano() >= entry.ExpiresAt {
		s.disk.Delete(key)
		return entry, false, nil
	}
	return entry, true, nil
}
