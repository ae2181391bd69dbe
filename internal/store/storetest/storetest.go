// Package storetest provides a shared contract test and an in-memory
// fake for kv.KV implementations.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskpad/internal/core/kv"
)

// MemKV is an in-memory kv.KV for tests.
type MemKV struct {
	mu   sync.Mutex
	data map[string][]byte

	// WriteErr, when set, is returned by every Write call.
	WriteErr error
	// Writes counts Write calls, including failed ones.
	Writes int
}

var _ kv.KV = (*MemKV)(nil)

// NewMemKV creates an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

// Read returns the value stored under key.
func (m *MemKV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

// Write stores value under key.
func (m *MemKV) Write(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Seed stores value under key without counting as a write.
func (m *MemKV) Seed(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// Get returns the current value under key, or nil.
func (m *MemKV) Get(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// Run exercises the kv.KV contract against the store returned by newKV.
// Each subtest receives a fresh store.
func Run(t *testing.T, newKV func(t *testing.T) kv.KV) {
	ctx := context.Background()

	t.Run("read missing key", func(t *testing.T) {
		store := newKV(t)

		value, ok, err := store.Read(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("write then read", func(t *testing.T) {
		store := newKV(t)

		require.NoError(t, store.Write(ctx, "tasks", []byte(`[{"id":"a1"}]`)))

		value, ok, err := store.Read(ctx, "tasks")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"a1"}]`, string(value))
	})

	t.Run("write overwrites prior value", func(t *testing.T) {
		store := newKV(t)

		require.NoError(t, store.Write(ctx, "tasks", []byte("old")))
		require.NoError(t, store.Write(ctx, "tasks", []byte("new")))

		value, ok, err := store.Read(ctx, "tasks")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "new", string(value))
	})

	t.Run("empty value round-trips", func(t *testing.T) {
		store := newKV(t)

		require.NoError(t, store.Write(ctx, "tasks", []byte{}))

		_, ok, err := store.Read(ctx, "tasks")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store := newKV(t)

		require.NoError(t, store.Write(ctx, "tasks", []byte("a")))
		require.NoError(t, store.Write(ctx, "other", []byte("b")))

		value, ok, err := store.Read(ctx, "tasks")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "a", string(value))
	})
}
