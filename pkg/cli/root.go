/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/osw-analyzer/pkg/logging"
)

const (
	name           = "oswan"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	archiveFlag = &cli.StringFlag{
		Name:     "archive",
		Aliases:  []string{"a"},
		Usage:    "OSWatcher archive directory",
		Sources:  cli.EnvVars("OSWAN_ARCHIVE"),
		Required: true,
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Report file path (default: stdout)",
		Sources: cli.EnvVars("OSWAN_OUTPUT"),
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   "Report format: text, json, yaml",
		Sources: cli.EnvVars("OSWAN_FORMAT"),
		Value:   "text",
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Thresholds config file (YAML)",
		Sources: cli.EnvVars("OSWAN_CONFIG"),
	}
	fromFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "Window start, capture-filename layout (yy.mm.dd.HHMM)",
	}
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "Window end, capture-filename layout (yy.mm.dd.HHMM)",
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "OSWatcher archive analyzer",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("OSWAN_LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			menuCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main() and only returns after
// the selected command completes or fails.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
