// Package jsonfile implements kv.KV with one JSON file per key.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/taskpad/internal/core/kv"
)

// KV stores each key as a file named <key>.json under a base directory.
// Writes go through a temp file and rename so readers never observe a
// partially written value.
type KV struct {
	dir string
	mu  sync.RWMutex
}

var _ kv.KV = (*KV)(nil)

// New creates a file-backed KV rooted at dir. The directory is created
// lazily on first write.
func New(dir string) *KV {
	return &KV{dir: dir}
}

// Read returns the value stored under key. A missing file means the key
// was never written.
func (s *KV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %q: %w", key, err)
	}

	return data, true, nil
}

// Write stores value under key atomically.
func (s *KV) Write(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}

	return nil
}

func (s *KV) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
