// Package cache keeps short-lived API responses on disk. Entries live in
// named buckets so a write can drop every response it made stale at once.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache is a TTL store rooted at a directory, one subdirectory per bucket.
type Cache struct {
	root string
	ttl  time.Duration
	mu   sync.RWMutex
}

// New creates a Cache rooted at root, creating the directory if needed.
func New(root string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return nil, errors.New("ttl must be positive")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Cache{root: root, ttl: ttl}, nil
}

// Get returns the fresh value stored under key in bucket.
func (c *Cache) Get(bucket, key string) ([]byte, bool, error) {
	file, err := c.file(bucket, key)
	if err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	info, err := os.Stat(file)
	if err != nil || time.Since(info.ModTime()) > c.ttl {
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data under key in bucket, replacing the file atomically.
func (c *Cache) Set(bucket, key string, data []byte) error {
	file, err := c.file(bucket, key)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, file); err != nil {
		return errors.Join(err, os.Remove(tmp))
	}
	return nil
}

// Purge drops every entry in bucket. Purging an empty bucket is a no-op.
func (c *Cache) Purge(bucket string) error {
	if err := validBucket(bucket); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.root, bucket))
}

func (c *Cache) file(bucket, key string) (string, error) {
	if err := validBucket(bucket); err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.root, bucket, hex.EncodeToString(sum[:16])+".json"), nil
}

func validBucket(bucket string) error {
	if bucket == "" || bucket == "." || bucket == ".." || filepath.Base(bucket) != bucket {
		return fmt.Errorf("invalid cache bucket %q", bucket)
	}
	return nil
}
