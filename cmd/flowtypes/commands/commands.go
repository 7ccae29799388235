// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete flowtypes command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	cborcmd "github.com/bureau-foundation/flowtypes/cmd/flowtypes/cbor"
	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/ids"
	manifestcmd "github.com/bureau-foundation/flowtypes/cmd/flowtypes/manifest"
	storecmd "github.com/bureau-foundation/flowtypes/cmd/flowtypes/store"
	"github.com/bureau-foundation/flowtypes/lib/version"
)

// Root builds and returns the flowtypes command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "flowtypes",
		Description: `flowtypes: canonical CBOR tooling for flow packs.

Normalize CBOR documents, derive content identifiers, and convert pack
manifests between authored JSON and the compact symbol-table encoding.`,
		Subcommands: []*cli.Command{
			cborcmd.Command(),
			ids.Command(),
			ids.I18nCommand(),
			manifestcmd.Command(),
			ids.SchemasCommand(),
			storecmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					if err := cli.NoArgs("version", args); err != nil {
						return err
					}
					fmt.Fprintf(os.Stdout, "flowtypes %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Check that a document is canonical",
				Command:     "flowtypes cbor validate document.cbor",
			},
			{
				Description: "Identify a document",
				Command:     "flowtypes id derive document.cbor",
			},
			{
				Description: "Encode a pack manifest",
				Command:     "flowtypes manifest encode pack.jsonc > pack.cbor",
			},
			{
				Description: "List the built-in schemas",
				Command:     "flowtypes schemas",
			},
		},
	}
}
