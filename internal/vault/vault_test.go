package vault

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVault(t *testing.T) *Vault {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Disable logging for tests
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	v, err := New(db, Options{Root: t.TempDir(), CacheSize: 8, CompressMin: 64})
	require.NoError(t, err)
	return v
}

func TestVaultRoundTrip(t *testing.T) {
	v := setupVault(t)

	content := []byte("\\section{Intro}\nsome markup\n")
	hash, err := v.Store(content)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	got, err := v.Get(hash)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	exists, err := v.Exists(hash)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestVaultDeduplicates(t *testing.T) {
	v := setupVault(t)

	first, err := v.Store([]byte("same content"))
	require.NoError(t, err)
	second, err := v.Store([]byte("same content"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVaultCompressesLargeVersions(t *testing.T) {
	v := setupVault(t)

	// Repetitive content well past the threshold compresses.
	content := bytes.Repeat([]byte("repetitive line of markup\n"), 100)
	hash, err := v.Store(content)
	require.NoError(t, err)

	meta, err := v.meta(hash)
	require.NoError(t, err)
	assert.True(t, meta.Compressed)
	assert.Equal(t, int64(len(content)), meta.Size)

	// A cold read goes through decompression.
	v.cache.Purge()
	got, err := v.Get(hash)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestVaultSmallVersionsStayRaw(t *testing.T) {
	v := setupVault(t)

	hash, err := v.Store([]byte("tiny"))
	require.NoError(t, err)

	meta, err := v.meta(hash)
	require.NoError(t, err)
	assert.False(t, meta.Compressed)
}

func TestVaultMissingVersion(t *testing.T) {
	v := setupVault(t)

	missing := strings.Repeat("ab", 32)
	_, err := v.Get(missing)
	assert.ErrorIs(t, err, ErrVersionNotFound)

	exists, err := v.Exists(missing)
	require.NoError(t, err)
	assert.False(t, exists)
}
