package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-publisher/cmd/publisher/internal/bootstrap"
	publishcmd "github.com/goliatone/go-publisher/internal/commands/publish"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPublish(os.Args[1:]); err != nil {
		log.Fatalf("publisher publish: %v", err)
	}
}

func runPublish(args []string) error {
	fs := flag.NewFlagSet("publisher-publish", flag.ExitOnError)
	source := fs.String("source", "", "Path to the markdown article to publish")
	theme := fs.String("theme", "", "Raster theme for code and table images (defaults to config)")
	basePath := fs.String("base-path", "", "Directory anchoring relative image references")
	tiebreak := fs.String("tiebreak", "", "Same-anchor ordering policy: divider-first or image-first")
	toClipboard := fs.Bool("clipboard", true, "Copy the rendered body to the clipboard")
	dryRun := fs.Bool("dry-run", false, "Parse, raster, and plan without touching the destination")
	history := fs.Bool("history", false, "Record the run in the publish history store")
	historyDSN := fs.String("history-dsn", "", "SQLite DSN backing the history store")
	logLevel := fs.String("log-level", "", "Log level override (trace..fatal)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" {
		return fmt.Errorf("source is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		Theme:          *theme,
		BasePath:       *basePath,
		Tiebreak:       *tiebreak,
		HistoryEnabled: *history,
		HistoryDSN:     *historyDSN,
		LogLevel:       *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	handler := publishcmd.NewPublishArticleHandler(module.Service, module.Driver, module.Logger, publishcmd.FeatureGates{})
	cmd := publishcmd.PublishArticleCommand{
		Path:            *source,
		Theme:           *theme,
		CopyToClipboard: *toClipboard,
		DryRun:          *dryRun,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute publish command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "publish command executed successfully")

	return nil
}
