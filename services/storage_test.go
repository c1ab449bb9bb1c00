package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"techforge_app_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir)
	ctx := context.Background()
	key := LeadExportPrefix + "2026/03/leads_2026-03-05.xlsx"

	t.Run("Put writes the object", func(t *testing.T) {
		result, err := storage.Put(ctx, key, strings.NewReader("PK workbook"), 11)
		require.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, "leads_2026-03-05.xlsx", result.FileName)
		assert.Equal(t, int64(11), result.FileSize)
		assert.Equal(t, XLSXContentType, result.MimeType)
		assert.Empty(t, result.URL)

		_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
		assert.NoError(t, err)
	})

	t.Run("Open reads it back", func(t *testing.T) {
		r, err := storage.Open(ctx, key)
		require.NoError(t, err)
		defer r.Close()
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "PK workbook", string(data))
	})

	t.Run("Missing key", func(t *testing.T) {
		_, err := storage.Open(ctx, LeadExportPrefix+"nope.xlsx")
		assert.ErrorIs(t, err, ErrExportNotFound)
	})

	t.Run("Keys cannot escape the directory", func(t *testing.T) {
		_, err := storage.Put(ctx, "../../etc/passwd", strings.NewReader("x"), 1)
		require.NoError(t, err, "the key is cleaned into the base directory")
		_, err = os.Stat(filepath.Join(dir, "etc", "passwd"))
		assert.NoError(t, err)

		_, err = storage.Open(ctx, "")
		assert.Error(t, err)
	})

	t.Run("List filters by prefix", func(t *testing.T) {
		_, err := storage.Put(ctx, "other/file.csv", strings.NewReader("a,b"), 3)
		require.NoError(t, err)

		objects, err := storage.List(ctx, LeadExportPrefix)
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.Equal(t, key, objects[0].Key)
		assert.Equal(t, int64(11), objects[0].Size)
	})

	t.Run("Remove is idempotent", func(t *testing.T) {
		require.NoError(t, storage.Remove(ctx, "other/file.csv"))
		require.NoError(t, storage.Remove(ctx, "other/file.csv"))
	})

	t.Run("List on a missing directory", func(t *testing.T) {
		objects, err := NewLocalStorage(filepath.Join(dir, "absent")).List(ctx, LeadExportPrefix)
		require.NoError(t, err)
		assert.Empty(t, objects)
	})
}

func TestPruneExports(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir)
	ctx := context.Background()

	old := GenerateLeadExportKey(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	recent := GenerateLeadExportKey(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	for _, key := range []string{old, recent} {
		_, err := storage.Put(ctx, key, strings.NewReader("PK"), 2)
		require.NoError(t, err)
	}
	stale := time.Now().AddDate(0, 0, -120)
	require.NoError(t, os.Chtimes(filepath.Join(dir, filepath.FromSlash(old)), stale, stale))

	removed, err := PruneExports(ctx, storage, time.Now().AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	objects, err := storage.List(ctx, LeadExportPrefix)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, recent, objects[0].Key)
}

func TestStorageKeys(t *testing.T) {
	assert.Equal(t, "exports/leads/2026/03/leads_2026-03-05.xlsx",
		GenerateLeadExportKey(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))

	key := GenerateStorageKey("exports/leads/ranges", "leads_2026-03-01_2026-03-05.xlsx")
	assert.True(t, strings.HasPrefix(key, "exports/leads/ranges/"))
	assert.True(t, strings.HasSuffix(key, ".xlsx"))
}

func TestInitializeStorageFallsBackToLocal(t *testing.T) {
	old := Storage
	t.Cleanup(func() { Storage = old })

	dir := t.TempDir()
	InitializeStorage(&config.Config{UploadDir: dir})
	require.IsType(t, &LocalStorage{}, Storage)
	assert.Equal(t, "local:"+dir, Storage.Name())
}
