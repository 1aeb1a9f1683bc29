package publishcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-publisher/internal/commands"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// WatchFactory opens a change watch on one markdown file. Sync handlers own
// the returned watch and stop it when the session ends.
type WatchFactory func(path string) (interfaces.FileWatch, error)

// PublishArticleHandler runs the full publish pipeline for one article.
type PublishArticleHandler struct {
	inner *commands.Handler[PublishArticleCommand]
}

// NewPublishArticleHandler wires the publish pipeline behind the shared
// command execution concerns.
func NewPublishArticleHandler(service interfaces.PublishService, driver interfaces.DestinationDriver, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PublishArticleCommand]) *PublishArticleHandler {
	exec := func(ctx context.Context, msg PublishArticleCommand) error {
		if !gates.publishEnabled() {
			return fmt.Errorf("publish commands are disabled")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, err := service.Publish(ctx, msg.Path, driver, interfaces.PublishOptions{
			Theme:           msg.Theme,
			CopyToClipboard: msg.CopyToClipboard,
			DryRun:          msg.DryRun,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishArticleCommand]{
		commands.WithLogger[PublishArticleCommand](logger),
		commands.WithOperation[PublishArticleCommand]("article.publish"),
		commands.WithMessageFields(func(msg PublishArticleCommand) map[string]any {
			return map[string]any{
				"path":    msg.Path,
				"dry_run": msg.DryRun,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishArticleCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishArticleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander for PublishArticleCommand.
func (h *PublishArticleHandler) Execute(ctx context.Context, msg PublishArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncArticleHandler keeps a destination current with its markdown source,
// re-publishing on every detected change until the context ends or the
// configured change limit is reached.
type SyncArticleHandler struct {
	inner *commands.Handler[SyncArticleCommand]
}

// NewSyncArticleHandler wires a watch-and-republish session behind the shared
// command execution concerns. Sync sessions are long-lived, so the handler
// disables the default execution timeout; callers bound sessions with the
// context or MaxChanges.
func NewSyncArticleHandler(service interfaces.PublishService, driver interfaces.DestinationDriver, watches WatchFactory, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncArticleCommand]) *SyncArticleHandler {
	exec := func(ctx context.Context, msg SyncArticleCommand) error {
		if !gates.syncEnabled() {
			return fmt.Errorf("sync commands are disabled")
		}
		if watches == nil {
			return fmt.Errorf("sync requires a watch factory")
		}

		watch, err := watches(msg.Path)
		if err != nil {
			return fmt.Errorf("start watch: %w", err)
		}
		defer watch.Stop()

		publishOpts := interfaces.PublishOptions{Theme: msg.Theme}
		changes := 0
		for {
			if _, err := service.Resync(ctx, watch, driver, publishOpts); err != nil {
				// A cancelled context after at least one successful
				// re-publish is a clean session shutdown.
				if changes > 0 && errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			changes++
			if msg.MaxChanges > 0 && changes >= msg.MaxChanges {
				return nil
			}
		}
	}

	handlerOpts := []commands.HandlerOption[SyncArticleCommand]{
		commands.WithLogger[SyncArticleCommand](logger),
		commands.WithOperation[SyncArticleCommand]("article.sync"),
		commands.WithTimeout[SyncArticleCommand](0),
		commands.WithMessageFields(func(msg SyncArticleCommand) map[string]any {
			return map[string]any{
				"path":        msg.Path,
				"max_changes": msg.MaxChanges,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncArticleCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncArticleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander for SyncArticleCommand.
func (h *SyncArticleHandler) Execute(ctx context.Context, msg SyncArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ProofreadArticleHandler compares the live destination body against the
// markdown source and reports divergence through the configured sink.
type ProofreadArticleHandler struct {
	inner *commands.Handler[ProofreadArticleCommand]
}

// DiffSink receives the comparison result of a proofread run. CLI frontends
// use it to print the unified diff; a nil sink keeps results in the logs only.
type DiffSink func(interfaces.DiffResult)

// NewProofreadArticleHandler wires destination reconciliation behind the
// shared command execution concerns.
func NewProofreadArticleHandler(service interfaces.PublishService, driver interfaces.DestinationDriver, sink DiffSink, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ProofreadArticleCommand]) *ProofreadArticleHandler {
	exec := func(ctx context.Context, msg ProofreadArticleCommand) error {
		if !gates.proofreadEnabled() {
			return fmt.Errorf("proofread commands are disabled")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.Proofread(ctx, msg.Path, driver)
		if err != nil {
			return err
		}
		if sink != nil {
			sink(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ProofreadArticleCommand]{
		commands.WithLogger[ProofreadArticleCommand](logger),
		commands.WithOperation[ProofreadArticleCommand]("article.proofread"),
		commands.WithMessageFields(func(msg ProofreadArticleCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ProofreadArticleCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProofreadArticleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander for ProofreadArticleCommand.
func (h *ProofreadArticleHandler) Execute(ctx context.Context, msg ProofreadArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}
