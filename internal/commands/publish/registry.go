package publishcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-publisher/internal/commands"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the publisher command handlers produced by RegisterPublisherCommands.
type HandlerSet struct {
	Publish   *PublishArticleHandler
	Sync      *SyncArticleHandler
	Proofread *ProofreadArticleHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	diffSink             DiffSink
	publishHandlerOpts   []commands.HandlerOption[PublishArticleCommand]
	syncHandlerOpts      []commands.HandlerOption[SyncArticleCommand]
	proofreadHandlerOpts []commands.HandlerOption[ProofreadArticleCommand]
}

// WithDiffSink routes proofread results to the supplied sink.
func WithDiffSink(sink DiffSink) Option {
	return func(cfg *options) {
		cfg.diffSink = sink
	}
}

// WithPublishHandlerOptions forwards options to the PublishArticleHandler constructor.
func WithPublishHandlerOptions(opts ...commands.HandlerOption[PublishArticleCommand]) Option {
	return func(cfg *options) {
		cfg.publishHandlerOpts = append(cfg.publishHandlerOpts, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the SyncArticleHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncArticleCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithProofreadHandlerOptions forwards options to the ProofreadArticleHandler constructor.
func WithProofreadHandlerOptions(opts ...commands.HandlerOption[ProofreadArticleCommand]) Option {
	return func(cfg *options) {
		cfg.proofreadHandlerOpts = append(cfg.proofreadHandlerOpts, opts...)
	}
}

// RegisterPublisherCommands builds the publisher command handlers and registers them
// with the provided registry. A HandlerSet containing the constructed handlers is
// returned so callers can wire additional integrations (dispatcher, cron) as needed.
func RegisterPublisherCommands(reg CommandRegistry, service interfaces.PublishService, driver interfaces.DestinationDriver, watches WatchFactory, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("publisher command registration: service is nil")
	}
	if driver == nil {
		return nil, errors.New("publisher command registration: destination driver is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "publish")

	publishHandler := NewPublishArticleHandler(service, driver, logger, gates, cfg.publishHandlerOpts...)
	syncHandler := NewSyncArticleHandler(service, driver, watches, logger, gates, cfg.syncHandlerOpts...)
	proofreadHandler := NewProofreadArticleHandler(service, driver, cfg.diffSink, logger, gates, cfg.proofreadHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(publishHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(syncHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(proofreadHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Publish:   publishHandler,
		Sync:      syncHandler,
		Proofread: proofreadHandler,
	}, nil
}

// RegisterPublishCron wires the provided publish handler into a cron registrar using
// the supplied command configuration and message payload. The handler is executed
// with a background context.
func RegisterPublishCron(reg CronRegistrar, handler *PublishArticleHandler, cfg command.HandlerConfig, msg PublishArticleCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
