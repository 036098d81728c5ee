package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/infrastructure/storage"
)

func newSQLite(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	kv, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLite_ClaveAusente(t *testing.T) {
	kv := newSQLite(t)

	_, found, err := kv.Get(context.Background(), "nunca-escrita")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLite_EscribeLeeYSobrescribe(t *testing.T) {
	kv := newSQLite(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "negocio:items", `[{"id":"1"}]`))

	value, found, err := kv.Get(ctx, "negocio:items")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, value)

	require.NoError(t, kv.Set(ctx, "negocio:items", `[]`))
	value, _, err = kv.Get(ctx, "negocio:items")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value, "el upsert reemplaza el valor anterior")
}

func TestSQLite_SobreviveReapertura(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kv.db")
	ctx := context.Background()

	first, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "clave", "valor"))
	require.NoError(t, first.Close())

	second, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	value, found, err := second.Get(ctx, "clave")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "valor", value)
}
