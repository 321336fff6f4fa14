package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"redline/internal/diff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupWatcher(t *testing.T) (*DocumentWatcher, string, string) {
	t.Helper()

	dir := t.TempDir()
	originalPath := filepath.Join(dir, "original.tex")
	revisedPath := filepath.Join(dir, "revised.tex")

	require.NoError(t, os.WriteFile(originalPath, []byte("a\nb\nc\n"), 0o644))
	require.NoError(t, os.WriteFile(revisedPath, []byte("a\nb\nc\n"), 0o644))

	w, err := NewDocumentWatcher(originalPath, revisedPath, diff.NewEngine(diff.DefaultConfig()), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	return w, originalPath, revisedPath
}

func TestWatcherInitialState(t *testing.T) {
	w, _, _ := setupWatcher(t)

	original, revised, result := w.Current()
	assert.Equal(t, "a\nb\nc\n", original)
	assert.Equal(t, "a\nb\nc\n", revised)
	assert.Equal(t, "No changes", result.Summary())
}

func TestWatcherPublishesOnWrite(t *testing.T) {
	w, _, revisedPath := setupWatcher(t)

	require.NoError(t, os.WriteFile(revisedPath, []byte("a\nB\nc\n"), 0o644))

	select {
	case update := <-w.Updates():
		assert.Equal(t, "a\nB\nc\n", update.Revised)
		assert.Equal(t, diff.Stats{Modifications: 1}, update.Result.Stats)
	case <-time.After(5 * time.Second):
		t.Fatal("no update after revised document changed")
	}
}

func TestWatcherMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewDocumentWatcher(
		filepath.Join(dir, "absent.tex"),
		filepath.Join(dir, "also-absent.tex"),
		diff.NewEngine(diff.DefaultConfig()), zap.NewNop())
	assert.Error(t, err)
}
