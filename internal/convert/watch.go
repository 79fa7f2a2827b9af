package convert

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-converts files as they change on disk. Events are debounced
// on the trailing edge: a burst of writes to the same path settles for the
// debounce window before the file is converted, so the output always
// reflects the last write of the burst.
type Watcher struct {
	mu          sync.Mutex
	runner      *Runner
	watcher     *fsnotify.Watcher
	pending     map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	logger      *zap.Logger
}

// NewWatcher creates a watcher over the given directories. Only files
// matching the runner's extension filter are converted.
func NewWatcher(runner *Runner, dirs []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}

	logger := runner.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		runner:      runner,
		watcher:     w,
		pending:     make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		logger:      logger,
	}, nil
}

// Start begins watching in a goroutine. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	go w.run(ctx)
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("close watcher", zap.Error(err))
	}
}

// run owns the pending map; events only record the latest write time, and
// the ticker converts paths once they have been quiet for the window.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !w.runner.matchExt(event.Name) {
				continue
			}
			w.pending[event.Name] = time.Now()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

// flush converts every pending path whose last event predates the debounce
// window.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	for path, last := range w.pending {
		if now.Sub(last) < w.debounceDur {
			continue
		}
		delete(w.pending, path)

		out, err := w.runner.ConvertFile(ctx, path)
		if err != nil {
			w.logger.Error("convert on change", zap.String("in", path), zap.Error(err))
			continue
		}
		w.logger.Info("converted on change", zap.String("in", path), zap.String("out", out))
	}
}
