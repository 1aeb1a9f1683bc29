package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// NotifyWatch subscribes to filesystem events instead of polling. The parent
// directory is watched rather than the file itself because editors commonly
// save through rename-and-replace, which retargets a file-level watch.
type NotifyWatch struct {
	state    atomic.Pointer[interfaces.SyncState]
	events   chan interfaces.SyncState
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	fsw      *fsnotify.Watcher
	target   string
	settle   time.Duration
	logger   interfaces.Logger
}

// Notify starts an event-driven watch on path.
func Notify(path string, opts ...Option) (*NotifyWatch, error) {
	o := buildOptions(opts)
	if o.settle <= 0 {
		return nil, fmt.Errorf("watcher: settle window must be positive, got %s", o.settle)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watcher: stat %s: %w", abs, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: create notify backend: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: watch %s: %w", filepath.Dir(abs), err)
	}

	w := &NotifyWatch{
		events: make(chan interfaces.SyncState, defaultEventBuffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		fsw:    fsw,
		target: abs,
		settle: o.settle,
		logger: o.logger,
	}
	w.state.Store(&interfaces.SyncState{
		Path:         abs,
		LastModified: info.ModTime(),
		Watching:     true,
	})

	go w.loop()

	w.logger.Info("watching file", "path", abs, "backend", BackendNotify, "settle", o.settle.String())
	return w, nil
}

func (w *NotifyWatch) loop() {
	defer close(w.done)
	defer w.fsw.Close()

	// pending is armed on the first event of a burst; the burst publishes as
	// one change once the file has been quiet for the settle window.
	var pending <-chan time.Time

	for {
		select {
		case <-w.stop:
			final := *w.state.Load()
			final.Watching = false
			w.state.Store(&final)
			close(w.events)
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				continue
			}
			if ev.Name != w.target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending == nil {
				pending = time.After(w.settle)
			}
		case err, ok := <-w.fsw.Errors:
			if ok && err != nil {
				w.logger.Warn("notify backend error", "error", err)
			}
		case <-pending:
			pending = nil
			w.publish()
		}
	}
}

func (w *NotifyWatch) publish() {
	current := w.state.Load()

	info, err := os.Stat(current.Path)
	if err != nil {
		return
	}
	if info.ModTime().Equal(current.LastModified) {
		return
	}

	next := *current
	next.LastModified = info.ModTime()
	next.LastChange = time.Now()
	next.ChangeCount++
	w.state.Store(&next)

	select {
	case w.events <- next:
	default:
	}

	w.logger.Debug("change detected", "path", next.Path, "change_count", next.ChangeCount)
}

// State returns the current sync record.
func (w *NotifyWatch) State() interfaces.SyncState {
	return *w.state.Load()
}

// Events exposes change notifications; see PollWatch.Events for delivery
// guarantees.
func (w *NotifyWatch) Events() <-chan interfaces.SyncState {
	return w.events
}

// Stop ends the watch. Safe to call any number of times.
func (w *NotifyWatch) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
	})
}
