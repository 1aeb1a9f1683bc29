package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

const (
	rootModule     = "publisher"
	markdownModule = "publisher.markdown"
	plannerModule  = "publisher.planner"
	rasterModule   = "publisher.raster"
	watcherModule  = "publisher.watcher"
	differModule   = "publisher.differ"
	historyModule  = "publisher.history"
	pipelineModule = "publisher.pipeline"
)

const (
	fieldArticlePath = "article_path"
	fieldBlockIndex  = "block_index"
	fieldSyncAction  = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger namespace reserved for the parser/indexer.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// PlannerLogger returns the logger namespace reserved for plan application.
func PlannerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, plannerModule)
}

// RasterLogger returns the logger namespace reserved for raster job runs.
func RasterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rasterModule)
}

// WatcherLogger returns the logger namespace reserved for file watches.
func WatcherLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watcherModule)
}

// DifferLogger returns the logger namespace reserved for content comparisons.
func DifferLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, differModule)
}

// HistoryLogger returns the logger namespace reserved for the publish log.
func HistoryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, historyModule)
}

// PipelineLogger returns the logger namespace reserved for the publish pipeline.
func PipelineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pipelineModule)
}

// WithArticleContext enriches the provided logger with common pipeline fields
// such as the source path and sync action. Empty values are ignored.
func WithArticleContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldArticlePath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldSyncAction] = trimmed
	}
	return WithFields(logger, fields)
}

// WithBlockIndex tags log entries with the block index being operated on.
func WithBlockIndex(logger interfaces.Logger, index int) interfaces.Logger {
	return WithFields(logger, map[string]any{fieldBlockIndex: index})
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
