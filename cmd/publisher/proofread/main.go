package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-publisher/cmd/publisher/internal/bootstrap"
	publishcmd "github.com/goliatone/go-publisher/internal/commands/publish"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runProofread(os.Args[1:]); err != nil {
		log.Fatalf("publisher proofread: %v", err)
	}
}

func runProofread(args []string) error {
	fs := flag.NewFlagSet("publisher-proofread", flag.ExitOnError)
	source := fs.String("source", "", "Path to the markdown source of truth")
	showDiff := fs.Bool("diff", true, "Print the unified diff when content drifted")
	logLevel := fs.String("log-level", "", "Log level override (trace..fatal)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" {
		return fmt.Errorf("source is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		LogLevel: *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	sink := func(result interfaces.DiffResult) {
		if result.Identical {
			fmt.Fprintf(os.Stdout, "content matches (%.2f%%)\n", result.MatchPercentage)
			return
		}
		fmt.Fprintf(os.Stdout, "content drifted: %.2f%% match, +%d/-%d lines\n",
			result.MatchPercentage, result.LinesAdded, result.LinesRemoved)
		if *showDiff && result.UnifiedDiff != "" {
			fmt.Fprintln(os.Stdout, result.UnifiedDiff)
		}
	}

	handler := publishcmd.NewProofreadArticleHandler(module.Service, module.Driver, sink, module.Logger, publishcmd.FeatureGates{})
	cmd := publishcmd.ProofreadArticleCommand{Path: *source}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute proofread command: %w", err)
	}

	return nil
}
