package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-publisher/internal/raster"
)

// ErrRasterThemeUnknown indicates the configured raster theme is not registered.
var ErrRasterThemeUnknown = errors.New("publisher config: raster theme is unknown")

// ErrWatcherIntervalInvalid ensures the polling interval stays positive.
var ErrWatcherIntervalInvalid = errors.New("publisher config: watcher interval must be positive")

// ErrWatcherBackendUnknown indicates an unsupported watch backend.
var ErrWatcherBackendUnknown = errors.New("publisher config: watcher backend is invalid")

// ErrHistoryDSNRequired ensures the history store has a database target when enabled.
var ErrHistoryDSNRequired = errors.New("publisher config: history DSN is required when history is enabled")

var ErrLoggingProviderRequired = errors.New("publisher config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("publisher config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("publisher config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("publisher config: logging format is invalid")
var ErrTiebreakPolicyInvalid = errors.New("publisher config: planner tiebreak policy is invalid")

// Config aggregates feature flags and adapter bindings for the publisher module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Markdown Markdown
	Planner  Planner
	Raster   Raster
	Watcher  Watcher
	History  History
	Logging  Logging
	Commands Commands
}

// Markdown controls the parser/indexer.
type Markdown struct {
	// BasePath anchors relative image references found in documents.
	BasePath string
	// HardWraps renders soft line breaks as explicit breaks in block markup.
	HardWraps bool
}

// Planner controls insertion plan construction.
type Planner struct {
	// Tiebreak orders artifacts sharing a block index: "divider-first" (default)
	// or "image-first". The policy must be total so plans reproduce run-to-run.
	Tiebreak string
}

// Raster controls raster job dispatch.
type Raster struct {
	// Theme names the default theme handed to the rasterizer.
	Theme string
	// OutputDir receives rendered images when the rasterizer writes files.
	OutputDir string
}

// Watcher controls change detection on source files.
type Watcher struct {
	// Interval is the polling cadence; ignored by the notify backend.
	Interval time.Duration
	// Backend selects "poll" (default) or "notify".
	Backend string
}

// History controls the publish-run audit log.
type History struct {
	Enabled bool
	// DSN is the sqlite connection string backing the log.
	DSN string
}

// Logging configures the logger provider used across modules.
type Logging struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// Commands configures the command handler foundation.
type Commands struct {
	Timeout time.Duration
}

// DefaultConfig returns the baseline configuration used when hosts provide none.
func DefaultConfig() Config {
	return Config{
		Markdown: Markdown{},
		Planner: Planner{
			Tiebreak: TiebreakDividerFirst,
		},
		Raster: Raster{
			Theme: "monokai",
		},
		Watcher: Watcher{
			Interval: time.Second,
			Backend:  WatcherBackendPoll,
		},
		History: History{
			Enabled: false,
			DSN:     "file:publisher_history.db?_fk=1",
		},
		Logging: Logging{
			Enabled:  true,
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		Commands: Commands{
			Timeout: 30 * time.Second,
		},
	}
}

// Tiebreak policy names accepted by Planner.Tiebreak.
const (
	TiebreakDividerFirst = "divider-first"
	TiebreakImageFirst   = "image-first"
)

// Watcher backend names accepted by Watcher.Backend.
const (
	WatcherBackendPoll   = "poll"
	WatcherBackendNotify = "notify"
)

// Validate enforces cross-field invariants before the container wires services.
func (cfg Config) Validate() error {
	switch normalize(cfg.Planner.Tiebreak) {
	case "", TiebreakDividerFirst, TiebreakImageFirst:
	default:
		return fmt.Errorf("%w: %s", ErrTiebreakPolicyInvalid, cfg.Planner.Tiebreak)
	}

	if theme := strings.TrimSpace(cfg.Raster.Theme); theme != "" && !raster.IsBuiltinTheme(theme) {
		return fmt.Errorf("%w: %s", ErrRasterThemeUnknown, theme)
	}

	if cfg.Watcher.Interval <= 0 {
		return ErrWatcherIntervalInvalid
	}
	switch normalize(cfg.Watcher.Backend) {
	case "", WatcherBackendPoll, WatcherBackendNotify:
	default:
		return fmt.Errorf("%w: %s", ErrWatcherBackendUnknown, cfg.Watcher.Backend)
	}

	if cfg.History.Enabled && strings.TrimSpace(cfg.History.DSN) == "" {
		return ErrHistoryDSNRequired
	}

	if cfg.Logging.Enabled {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := normalize(cfg.Logging.Level); !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := normalize(cfg.Logging.Format); !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	}
	return false
}

func isSupportedLevel(level string) bool {
	switch level {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
		return true
	}
	return false
}

func isSupportedFormat(format string) bool {
	switch format {
	case "", "json", "console", "pretty":
		return true
	}
	return false
}
