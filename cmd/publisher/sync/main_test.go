package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-publisher/cmd/publisher/internal/bootstrap"
	"github.com/goliatone/go-publisher/internal/adapters/memory"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

type stubSyncService struct {
	resyncCalls int
}

func (s *stubSyncService) Publish(context.Context, string, interfaces.DestinationDriver, interfaces.PublishOptions) (*interfaces.PublishSummary, error) {
	return &interfaces.PublishSummary{}, nil
}

func (s *stubSyncService) Resync(context.Context, interfaces.FileWatch, interfaces.DestinationDriver, interfaces.PublishOptions) (*interfaces.PublishSummary, error) {
	s.resyncCalls++
	return &interfaces.PublishSummary{}, nil
}

func (s *stubSyncService) Proofread(context.Context, string, interfaces.DestinationDriver) (interfaces.DiffResult, error) {
	return interfaces.DiffResult{}, nil
}

type idleWatch struct {
	events chan interfaces.SyncState
}

func (w *idleWatch) State() interfaces.SyncState {
	return interfaces.SyncState{Watching: true}
}

func (w *idleWatch) Events() <-chan interfaces.SyncState { return w.events }
func (w *idleWatch) Stop()                               {}

func TestRunSyncStopsAtChangeLimit(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubSyncService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Service: svc,
			Driver:  memory.New(),
			Logger:  logging.NoOp(),
			Watches: func(string) (interfaces.FileWatch, error) {
				return &idleWatch{events: make(chan interfaces.SyncState)}, nil
			},
		}, nil
	}

	if err := runSync([]string{
		"-source", "post.md",
		"-max-changes", "2",
	}); err != nil {
		t.Fatalf("runSync returned error: %v", err)
	}
	if svc.resyncCalls != 2 {
		t.Fatalf("expected two resync rounds, got %d", svc.resyncCalls)
	}
}

func TestRunSyncRequiresSource(t *testing.T) {
	if err := runSync(nil); err == nil {
		t.Fatal("expected error when source flag missing")
	}
}
