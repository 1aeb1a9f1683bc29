// Package watcher tracks a markdown file for edits and publishes sync state
// that re-publish loops can poll or subscribe to.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

const (
	// BackendPoll compares the file's mtime on a fixed interval.
	BackendPoll = "poll"
	// BackendNotify subscribes to filesystem events and settles bursts.
	BackendNotify = "notify"
)

const defaultEventBuffer = 16

type options struct {
	interval time.Duration
	settle   time.Duration
	logger   interfaces.Logger
}

// Option customises a watch.
type Option func(*options)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithSettle sets how long the notify backend waits after the last filesystem
// event before treating a burst as one change.
func WithSettle(d time.Duration) Option {
	return func(o *options) {
		o.settle = d
	}
}

// WithLogger attaches a logger to the watch.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		interval: time.Second,
		settle:   200 * time.Millisecond,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New starts a watch on path using the named backend.
func New(backend, path string, opts ...Option) (interfaces.FileWatch, error) {
	switch backend {
	case "", BackendPoll:
		return Poll(path, opts...)
	case BackendNotify:
		return Notify(path, opts...)
	default:
		return nil, fmt.Errorf("watcher: unknown backend %q", backend)
	}
}

// PollWatch polls a file's mtime. The whole sync record is published
// atomically so readers never observe a half-updated state.
type PollWatch struct {
	state    atomic.Pointer[interfaces.SyncState]
	events   chan interfaces.SyncState
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	logger   interfaces.Logger
}

// Poll starts a polling watch on path. The file must exist when the watch
// starts; a deletion mid-watch is tolerated in case the file comes back.
func Poll(path string, opts ...Option) (*PollWatch, error) {
	o := buildOptions(opts)
	if o.interval <= 0 {
		return nil, fmt.Errorf("watcher: poll interval must be positive, got %s", o.interval)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watcher: stat %s: %w", abs, err)
	}

	w := &PollWatch{
		events: make(chan interfaces.SyncState, defaultEventBuffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: o.logger,
	}
	w.state.Store(&interfaces.SyncState{
		Path:         abs,
		LastModified: info.ModTime(),
		Watching:     true,
	})

	go w.loop(o.interval)

	w.logger.Info("watching file", "path", abs, "backend", BackendPoll, "interval", o.interval.String())
	return w, nil
}

func (w *PollWatch) loop(interval time.Duration) {
	defer close(w.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			w.publishStopped()
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll runs one mtime comparison. Any number of writes between two polls
// collapse into a single change because re-sync re-reads the whole file.
// A stat failure is not a change; the file may reappear.
func (w *PollWatch) poll() {
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

func (w *PollWatch) publishStopped() {
	final := *w.state.Load()
	final.Watching = false
	w.state.Store(&final)
	close(w.events)
}

// State returns the current sync record.
func (w *PollWatch) State() interfaces.SyncState {
	return *w.state.Load()
}

// Events exposes change notifications. The channel is best-effort: slow
// consumers miss intermediate events but State() always holds the latest
// record. The channel closes when the watch stops.
func (w *PollWatch) Events() <-chan interfaces.SyncState {
	return w.events
}

// Stop ends the watch. Safe to call any number of times.
func (w *PollWatch) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
	})
}
