package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-publisher/cmd/publisher/internal/bootstrap"
	"github.com/goliatone/go-publisher/internal/adapters/memory"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

type stubPublishService struct {
	publishCalls int
	publishPath  string
	publishOpts  interfaces.PublishOptions
}

func (s *stubPublishService) Publish(_ context.Context, path string, _ interfaces.DestinationDriver, opts interfaces.PublishOptions) (*interfaces.PublishSummary, error) {
	s.publishCalls++
	s.publishPath = path
	s.publishOpts = opts
	return &interfaces.PublishSummary{}, nil
}

func (s *stubPublishService) Resync(context.Context, interfaces.FileWatch, interfaces.DestinationDriver, interfaces.PublishOptions) (*interfaces.PublishSummary, error) {
	return &interfaces.PublishSummary{}, nil
}

func (s *stubPublishService) Proofread(context.Context, string, interfaces.DestinationDriver) (interfaces.DiffResult, error) {
	return interfaces.DiffResult{}, nil
}

func TestRunPublishUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubPublishService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Service: svc,
			Driver:  memory.New(),
			Logger:  logging.NoOp(),
		}, nil
	}

	if err := runPublish([]string{
		"-source", "post.md",
		"-theme", "dracula",
		"-dry-run",
	}); err != nil {
		t.Fatalf("runPublish returned error: %v", err)
	}
	if svc.publishCalls != 1 {
		t.Fatalf("expected publish to be called once, got %d", svc.publishCalls)
	}
	if svc.publishPath != "post.md" {
		t.Fatalf("expected publish path post.md, got %s", svc.publishPath)
	}
	if svc.publishOpts.Theme != "dracula" || !svc.publishOpts.DryRun {
		t.Fatalf("unexpected publish options %+v", svc.publishOpts)
	}
}

func TestRunPublishRequiresSource(t *testing.T) {
	if err := runPublish(nil); err == nil {
		t.Fatal("expected error when source flag missing")
	}
}
