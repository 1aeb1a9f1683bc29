package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-publisher/cmd/publisher/internal/bootstrap"
	publishcmd "github.com/goliatone/go-publisher/internal/commands/publish"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("publisher sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("publisher-sync", flag.ExitOnError)
	source := fs.String("source", "", "Path to the markdown article to watch")
	theme := fs.String("theme", "", "Raster theme applied on every re-publish")
	backend := fs.String("backend", "", "Watch backend: poll or notify")
	interval := fs.Duration("interval", time.Second, "Polling cadence for the poll backend")
	maxChanges := fs.Int("max-changes", 0, "Stop after this many re-publishes (0 keeps watching)")
	logLevel := fs.String("log-level", "", "Log level override (trace..fatal)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" {
		return fmt.Errorf("source is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		Theme:           *theme,
		WatcherBackend:  *backend,
		WatcherInterval: *interval,
		LogLevel:        *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := publishcmd.NewSyncArticleHandler(module.Service, module.Driver, module.Watches, module.Logger, publishcmd.FeatureGates{})
	cmd := publishcmd.SyncArticleCommand{
		Path:       *source,
		Theme:      *theme,
		MaxChanges: *maxChanges,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "sync session ended")

	return nil
}
