// Package watch reruns generation when input files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/computedgen/internal/ctxlog"
)

// Config controls a watch loop.
type Config struct {
	// Dirs are watched non-recursively.
	Dirs []string
	// Accept filters the paths that trigger a regeneration.
	Accept func(path string) bool
	// Window is the quiet period before a batch is handed over.
	Window time.Duration
	// MaxBatch flushes early once this many distinct paths are pending.
	MaxBatch int
}

// Run watches cfg.Dirs until ctx is cancelled and calls onChange with each
// debounced batch of changed paths. Batches are handled one at a time on the
// calling goroutine.
func Run(ctx context.Context, cfg Config, onChange func(ctx context.Context, paths []string)) error {
	logger := ctxlog.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fsw.Close()

	dirs := slices.Clone(cfg.Dirs)
	slices.Sort(dirs)
	dirs = slices.Compact(dirs)
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("Watching directory.", "dir", dir)
	}

	queue := newBatchQueue()
	debouncer := NewDebouncer(cfg.Window, max(cfg.MaxBatch, 1), queue.push)
	// Pending paths are dropped once the loop has returned.
	defer debouncer.Stop()

	logger.Info("Watching for changes.", "dirs", len(dirs))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped.")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) || (cfg.Accept != nil && !cfg.Accept(event.Name)) {
				continue
			}
			logger.Debug("File event.", "path", event.Name, "op", event.Op.String())
			debouncer.Add(filepath.Clean(event.Name))

		case <-queue.ready:
			for _, paths := range queue.drain() {
				if ctx.Err() != nil {
					break
				}
				logger.Info("Regenerating.", "changed", len(paths))
				onChange(ctx, paths)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}

// batchQueue hands flushed batches to the watch loop. push never blocks: the
// batch limit flushes from inside the loop.
type batchQueue struct {
	mu      sync.Mutex
	batches [][]string
	ready   chan struct{}
}

func newBatchQueue() *batchQueue {
	return &batchQueue{ready: make(chan struct{}, 1)}
}

func (q *batchQueue) push(paths []string) {
	q.mu.Lock()
	q.batches = append(q.batches, paths)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *batchQueue) drain() [][]string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.batches
	q.batches = nil
	return out
}
