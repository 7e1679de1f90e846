// Package watch re-runs a function whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/applifecycle/pkg/log"
)

// DefaultDebounce is the delay between a change and the re-run.
const DefaultDebounce = 100 * time.Millisecond

// Config holds watcher options.
type Config struct {
	// Debounce coalesces bursts of writes. Default: DefaultDebounce
	Debounce time.Duration

	// Logger receives watcher diagnostics. Default: no-op
	Logger log.Logger
}

// Run calls fn once, then again after every write or re-creation of path,
// until ctx is canceled. Errors from fn are logged and do not stop the watch.
//
// The parent directory is watched so editors that replace the file by rename
// keep triggering runs.
func Run(ctx context.Context, path string, cfg Config, fn func(ctx context.Context) error) error {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNoopLogger()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	r := &runner{fn: fn, logger: cfg.Logger, path: abs}
	r.run(ctx)

	var (
		mu       sync.Mutex
		debounce *time.Timer
	)
	defer func() {
		mu.Lock()
		if debounce != nil && debounce.Stop() {
			r.wg.Done()
		}
		mu.Unlock()
		r.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			mu.Lock()
			// A stopped timer never runs, so release its slot.
			if debounce != nil && debounce.Stop() {
				r.wg.Done()
			}
			r.wg.Add(1)
			debounce = time.AfterFunc(cfg.Debounce, func() {
				defer r.wg.Done()
				r.run(ctx)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Error("watcher error", log.Err(err))
		}
	}
}

// runner serializes calls to fn.
type runner struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	fn     func(ctx context.Context) error
	logger log.Logger
	path   string
}

func (r *runner) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.fn(ctx); err != nil {
		r.logger.Error("run failed", log.String("path", r.path), log.Err(err))
	}
}
