// Package main provides the canondocs binary entry point.
// Canondocs fetches the published canon specification repository and
// renders it into markdown documents and sidebar navigation for the
// documentation site.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opencanon/canondocs/config"
	"github.com/opencanon/canondocs/generate"
	"github.com/opencanon/canondocs/registry"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "canondocs"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "canondocs",
		Short: "Specification documentation generator",
		Long: `Canondocs generates the specification section of the documentation
site. It fetches the published specification repository, ingests every
versioned record, resolves type relationships, and writes one markdown
document per version plus an index page and sidebar navigation.

Input and output directories come from canondocs.yaml; the defaults are
relative to the current working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(logLevel, false)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the fetched specification source changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(logLevel, true)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(logLevel string, watch bool) error {
	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	loader := config.NewLoader(logger)
	if err := loader.EnsureUserConfig(); err != nil {
		logger.Warn("failed to create default user config", "error", err.Error())
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher := registry.NewFetcher(
		cfg.Registry.URL,
		cfg.Registry.Branch,
		cfg.Registry.CloneTimeout,
		cfg.Registry.CloneDepth,
		logger,
	)
	generator := generate.New(cfg, fetcher, logger)

	if watch {
		// One fetch up front, then regenerate from disk on change.
		if err := fetcher.Fetch(ctx, cfg.Paths.SpecsDir); err != nil {
			return err
		}
		watcher := generate.NewWatcher(generate.New(cfg, nil, logger), cfg.Paths.SpecsDir, logger)
		err := watcher.Watch(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return generator.Run(ctx)
}
