// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the flowtypes binary.
//
// A [Command] is a node in a tree: groups carry Subcommands, leaves
// carry Run. Flags are declared as tagged struct fields (see
// [BindFlags]) and parsed with spf13/pflag before Run is called.
// Unknown commands and flags get an edit-distance suggestion.
//
// [NewCommandLogger] builds the slog logger handed to every Run:
// text output on a terminal, JSON otherwise. Commands that report a
// non-zero outcome without an error message return [ExitError].
package cli
