package store_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/worktravel/internal/store"
)

var quiet = log.New(io.Discard)

func TestBackends(t *testing.T) {
	ctx := context.Background()
	for _, kind := range []string{store.KindJSON, store.KindSQLite, store.KindMemory} {
		t.Run(kind, func(t *testing.T) {
			b, err := store.Open(kind, t.TempDir(), quiet)
			require.NoError(t, err)
			defer b.Close()

			_, ok, err := b.Get(ctx, "@toDos")
			require.NoError(t, err)
			assert.False(t, ok, "fresh backend must report the key absent")

			require.NoError(t, b.Set(ctx, "@toDos", `{"a":1}`))
			require.NoError(t, b.Set(ctx, "@working", "true"))
			require.NoError(t, b.Set(ctx, "@toDos", `{}`))

			v, ok, err := b.Get(ctx, "@toDos")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{}`, v)

			v, ok, err = b.Get(ctx, "@working")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", v)
		})
	}
}

func TestBackendsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	for _, kind := range []string{store.KindJSON, store.KindSQLite} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			b, err := store.Open(kind, dir, quiet)
			require.NoError(t, err)
			require.NoError(t, b.Set(ctx, "@working", "false"))
			require.NoError(t, b.Close())

			b2, err := store.Open(kind, dir, quiet)
			require.NoError(t, err)
			defer b2.Close()
			v, ok, err := b2.Get(ctx, "@working")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "false", v)
		})
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storage.json"), []byte("{nope"), 0o644))

	b, err := store.Open(store.KindJSON, dir, quiet)
	require.NoError(t, err)
	ctx := context.Background()
	_, ok, err := b.Get(ctx, "@toDos")
	require.NoError(t, err)
	assert.False(t, ok, "unreadable file reads as empty")

	raw, err := os.ReadFile(filepath.Join(dir, "storage.json"))
	require.NoError(t, err)
	assert.Equal(t, "{nope", string(raw), "a read leaves the file alone")

	require.NoError(t, b.Set(ctx, "@working", "true"))
	v, ok, err := b.Get(ctx, "@working")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := store.Open("redis", t.TempDir(), quiet)
	assert.ErrorContains(t, err, "unknown backend")
}
