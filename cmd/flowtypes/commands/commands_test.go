// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
)

// TestCommandTree walks the command tree and checks that every
// command is documented and that sibling names are unique.
func TestCommandTree(t *testing.T) {
	walkCommands(Root(), nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")
		if len(path) > 1 && command.Summary == "" {
			t.Errorf("%s: missing Summary", name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: neither Run nor Subcommands", name)
		}
		seen := make(map[string]bool)
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("%s: duplicate subcommand %q", name, sub.Name)
			}
			seen[sub.Name] = true
		}
	})
}

func TestRootTopLevelCommands(t *testing.T) {
	want := []string{"cbor", "id", "i18n", "manifest", "schemas", "store", "version"}
	var got []string
	for _, sub := range Root().Subcommands {
		got = append(got, sub.Name)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("top-level commands = %v, want %v", got, want)
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	err := Root().Execute(context.Background(), []string{"manifets"}, logger)
	if err == nil || !strings.Contains(err.Error(), `did you mean "manifest"`) {
		t.Errorf("Execute error = %v, want suggestion for manifest", err)
	}
}

// walkCommands visits every command in the tree with its path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
