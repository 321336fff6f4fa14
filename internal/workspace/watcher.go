// internal/workspace/watcher.go
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"redline/internal/diff"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Update carries a freshly computed diff after one of the watched
// documents changed on disk.
type Update struct {
	Original string
	Revised  string
	Result   *diff.Result
}

// DocumentWatcher watches an original and a revised document on disk and
// recomputes their diff whenever either file is written. Updates are
// published on a channel; the latest update wins if the consumer lags.
type DocumentWatcher struct {
	originalPath string
	revisedPath  string
	engine       *diff.Engine
	watcher      *fsnotify.Watcher
	updates      chan Update
	logger       *zap.Logger

	mu       sync.Mutex
	original string
	revised  string
}

// NewDocumentWatcher reads both documents, computes the initial diff and
// starts watching their parent directories. Watching directories rather
// than the files themselves survives the write-rename pattern editors use.
func NewDocumentWatcher(originalPath, revisedPath string, engine *diff.Engine, logger *zap.Logger) (*DocumentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &DocumentWatcher{
		originalPath: filepath.Clean(originalPath),
		revisedPath:  filepath.Clean(revisedPath),
		engine:       engine,
		watcher:      watcher,
		updates:      make(chan Update, 1),
		logger:       logger,
	}

	dirs := map[string]bool{
		filepath.Dir(w.originalPath): true,
		filepath.Dir(w.revisedPath):  true,
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	if err := w.reload(); err != nil {
		watcher.Close()
		return nil, err
	}

	go w.watchLoop()
	return w, nil
}

// Updates returns the channel on which recomputed diffs are delivered.
func (w *DocumentWatcher) Updates() <-chan Update {
	return w.updates
}

// Current returns the most recently computed documents and diff.
func (w *DocumentWatcher) Current() (string, string, *diff.Result) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.original, w.revised, w.engine.Compare(w.original, w.revised)
}

func (w *DocumentWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *DocumentWatcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}

	name := filepath.Clean(event.Name)
	if name != w.originalPath && name != w.revisedPath {
		return
	}

	if err := w.reload(); err != nil {
		w.logger.Error("reloading documents", zap.String("path", name), zap.Error(err))
		return
	}

	w.mu.Lock()
	update := Update{
		Original: w.original,
		Revised:  w.revised,
		Result:   w.engine.Compare(w.original, w.revised),
	}
	w.mu.Unlock()

	w.publish(update)
}

// publish delivers an update without blocking: a stale pending update is
// dropped in favor of the new one.
func (w *DocumentWatcher) publish(update Update) {
	for {
		select {
		case w.updates <- update:
			return
		default:
			select {
			case <-w.updates:
			default:
			}
		}
	}
}

func (w *DocumentWatcher) reload() error {
	original, err := os.ReadFile(w.originalPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.originalPath, err)
	}
	revised, err := os.ReadFile(w.revisedPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.revisedPath, err)
	}

	w.mu.Lock()
	w.original = string(original)
	w.revised = string(revised)
	w.mu.Unlock()
	return nil
}

// Close stops watching. The updates channel is not closed; consumers
// should stop reading after Close returns.
func (w *DocumentWatcher) Close() error {
	return w.watcher.Close()
}
