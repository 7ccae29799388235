// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/commands"
	"github.com/bureau-foundation/flowtypes/lib/config"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their own outcome (like "cbor validate")
		// return an error carrying the exit code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := cli.NewCommandLogger(logLevel())
	return commands.Root().Execute(ctx, os.Args[1:], logger)
}

// logLevel reads log.level from FLOWTYPES_CONFIG when set. A missing
// or broken configuration is reported by the commands that need it,
// so here it only falls back to info.
func logLevel() slog.Level {
	if os.Getenv(config.EnvVar) == "" {
		return slog.LevelInfo
	}
	cfg, err := config.Load()
	if err != nil {
		return slog.LevelInfo
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
