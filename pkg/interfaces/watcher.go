package interfaces

import "time"

// SyncState is the watcher's published view of a watched file. A watch has a
// single writer (the polling task) and any number of readers; implementations
// publish the whole record atomically so readers observe either the pre-update
// or post-update state, never a torn one.
type SyncState struct {
	Path         string
	LastModified time.Time
	LastChange   time.Time
	// ChangeCount increments once per detected mutation, not once per write:
	// bursts between two polls collapse into a single increment because
	// downstream re-sync re-parses the whole file anyway.
	ChangeCount uint64
	Watching    bool
}

// FileWatch exposes a running watch on a single file. Stop is idempotent.
type FileWatch interface {
	State() SyncState
	Events() <-chan SyncState
	Stop()
}
