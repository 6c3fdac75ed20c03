package fs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/scribe/pkg/core"
)

// Watch reports changes to keys matching pattern (doublestar syntax), including
// writes made by other processes. The channel is closed when ctx is done.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.StorageEvent, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	out := make(chan core.StorageEvent, core.DefaultEventBuffer)
	w := &watchWorker{
		storage:   s,
		pattern:   pattern,
		watcher:   watcher,
		events:    out,
		debouncer: newDebouncer(s.config.Debounce),
	}

	s.setWatching(1)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.reportError(fmt.Errorf("watcher failed: %w", err))
	}))

	return out, nil
}

type watchWorker struct {
	storage   *Storage
	pattern   string
	watcher   *fsnotify.Watcher
	events    chan core.StorageEvent
	debouncer *debouncer
}

// run is the main event loop of the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.storage.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.storage.config.Logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.storage.config.Logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer close(w.events)
	defer w.storage.setWatching(-1)
	defer w.watcher.Close()

	err = w.loop(ctx)

	// Pending timers must finish before the events channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.storage.reportError(wErr)
		}
	}
}

// handle filters and maps one filesystem event.
func (w *watchWorker) handle(ctx context.Context, event fsnotify.Event) {
	w.storage.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	key, ok := w.storage.keyFromPath(event.Name)
	if !ok {
		return
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return
	}

	w.debouncer.add(core.StorageEvent{Key: key, Timestamp: time.Now().Unix()}, func(e core.StorageEvent) {
		defer func() {
			// The channel may be closed if shutdown outlived the debounce timeout.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (s *Storage) reportError(err error) {
	s.config.Logger.Error("fsnotify error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

func (s *Storage) setWatching(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers += delta
}
