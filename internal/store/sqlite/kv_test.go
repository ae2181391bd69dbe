package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskpad/internal/core/kv"
	"github.com/colonyops/taskpad/internal/store/storetest"
)

func TestKV_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) kv.KV {
		store, err := Open(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestKV_Database(t *testing.T) {
	ctx := context.Background()

	t.Run("creates database file", func(t *testing.T) {
		dir := t.TempDir()

		store, err := Open(dir)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		_, err = os.Stat(filepath.Join(dir, dbFile))
		assert.NoError(t, err)
	})

	t.Run("survives reopen", func(t *testing.T) {
		dir := t.TempDir()

		store, err := Open(dir)
		require.NoError(t, err)
		require.NoError(t, store.Write(ctx, "tasks", []byte("persisted")))
		require.NoError(t, store.Close())

		store, err = Open(dir)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		value, ok, err := store.Read(ctx, "tasks")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "persisted", string(value))
	})

	t.Run("write updates existing row in place", func(t *testing.T) {
		dir := t.TempDir()

		store, err := Open(dir)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		require.NoError(t, store.Write(ctx, "tasks", []byte("one")))
		require.NoError(t, store.Write(ctx, "tasks", []byte("two")))

		var count int
		require.NoError(t, store.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_store`).Scan(&count))
		assert.Equal(t, 1, count)
	})
}
