package publishcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	publishArticleMessageType   = "publisher.article.publish"
	syncArticleMessageType      = "publisher.article.sync"
	proofreadArticleMessageType = "publisher.article.proofread"
)

// PublishArticleCommand runs the full pipeline over one markdown file.
type PublishArticleCommand struct {
	// Path selects the markdown file to publish.
	Path string `json:"path"`
	// Theme overrides the raster theme for this run.
	Theme string `json:"theme,omitempty"`
	// CopyToClipboard additionally hands the rendered body to the clipboard transport.
	CopyToClipboard bool `json:"copy_to_clipboard,omitempty"`
	// DryRun parses, rasters, and plans without touching the destination.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (PublishArticleCommand) Type() string { return publishArticleMessageType }

// Validate ensures a source path is present before handlers execute.
func (cmd PublishArticleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requireNonBlank("publisher.article.publish.path_required", "path is required"))),
	)
}

// SyncArticleCommand watches one markdown file and re-publishes on change.
type SyncArticleCommand struct {
	// Path selects the markdown file to watch.
	Path string `json:"path"`
	// Theme overrides the raster theme for every re-publish.
	Theme string `json:"theme,omitempty"`
	// MaxChanges stops the session after this many re-publishes; zero keeps
	// syncing until the context ends.
	MaxChanges int `json:"max_changes,omitempty"`
}

// Type implements command.Message.
func (SyncArticleCommand) Type() string { return syncArticleMessageType }

// Validate ensures watch input is present before handlers execute.
func (cmd SyncArticleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requireNonBlank("publisher.article.sync.path_required", "path is required"))),
		validation.Field(&cmd.MaxChanges, validation.Min(0)),
	)
}

// ProofreadArticleCommand compares the live destination body with the
// markdown source and reports drift.
type ProofreadArticleCommand struct {
	// Path selects the markdown source of truth.
	Path string `json:"path"`
}

// Type implements command.Message.
func (ProofreadArticleCommand) Type() string { return proofreadArticleMessageType }

// Validate ensures a source path is present before handlers execute.
func (cmd ProofreadArticleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requireNonBlank("publisher.article.proofread.path_required", "path is required"))),
	)
}

func requireNonBlank(code, message string) func(value any) error {
	return func(value any) error {
		if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
