package publisher

import "github.com/goliatone/go-publisher/internal/runtimeconfig"

var (
	ErrRasterThemeUnknown      = runtimeconfig.ErrRasterThemeUnknown
	ErrWatcherIntervalInvalid  = runtimeconfig.ErrWatcherIntervalInvalid
	ErrWatcherBackendUnknown   = runtimeconfig.ErrWatcherBackendUnknown
	ErrHistoryDSNRequired      = runtimeconfig.ErrHistoryDSNRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrTiebreakPolicyInvalid   = runtimeconfig.ErrTiebreakPolicyInvalid
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.Markdown
	PlannerConfig  = runtimeconfig.Planner
	RasterConfig   = runtimeconfig.Raster
	WatcherConfig  = runtimeconfig.Watcher
	HistoryConfig  = runtimeconfig.History
	LoggingConfig  = runtimeconfig.Logging
	CommandsConfig = runtimeconfig.Commands
)

// Tiebreak policy names accepted by PlannerConfig.Tiebreak.
const (
	TiebreakDividerFirst = runtimeconfig.TiebreakDividerFirst
	TiebreakImageFirst   = runtimeconfig.TiebreakImageFirst
)

// Watcher backend names accepted by WatcherConfig.Backend.
const (
	WatcherBackendPoll   = runtimeconfig.WatcherBackendPoll
	WatcherBackendNotify = runtimeconfig.WatcherBackendNotify
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
