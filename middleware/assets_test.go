package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.css")
	require.NoError(t, os.WriteFile(tmpFile, []byte("body { color: red; }"), 0644))

	hash := computeFileHash(tmpFile)
	assert.Len(t, hash, 8)
	assert.Equal(t, hash, computeFileHash(tmpFile))

	assert.Empty(t, computeFileHash("non_existent_file.css"))
}

func TestVersionOf(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "site.js")
	require.NoError(t, os.WriteFile(tmpFile, []byte("console.log(1)"), 0644))

	assert.Len(t, versionOf(tmpFile), 8)
	assert.Equal(t, "1", versionOf("missing.js"))
}

func TestGetVersionsDefault(t *testing.T) {
	ctx := context.Background()

	// Either a computed hash or the default, depending on test order
	assert.NotEmpty(t, GetCSSVersion(ctx))
	assert.NotEmpty(t, GetJSVersion(ctx))
	assert.NotEmpty(t, GetFaviconVersion(ctx))
}
