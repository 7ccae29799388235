// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/lib/schemaregistry"
)

type schemasParams struct {
	cli.JSONOutput
	Kind string `flag:"kind" desc:"only list schemas of this kind (pack, component)"`
}

// SchemasCommand returns the "schemas" command.
func SchemasCommand() *cli.Command {
	var params schemasParams

	return &cli.Command{
		Name:    "schemas",
		Summary: "List the registered canonical schemas",
		Usage:   "flowtypes schemas [--kind pack|component] [--json]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("schemas takes no positional arguments, got %q", args[0])
			}
			return listSchemas(&params, os.Stdout)
		},
	}
}

type schemaEntry struct {
	ID      string `json:"id"`
	Version uint32 `json:"version"`
	Kind    string `json:"kind"`
}

func listSchemas(params *schemasParams, w io.Writer) error {
	schemas := schemaregistry.Schemas()
	if params.Kind != "" {
		schemas = schemaregistry.ByKind(schemaregistry.Kind(params.Kind))
	}

	entries := make([]schemaEntry, 0, len(schemas))
	for _, schema := range schemas {
		entries = append(entries, schemaEntry{ID: schema.ID, Version: schema.Version, Kind: string(schema.Kind)})
	}
	if done, err := params.EmitJSON(w, entries); done {
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tVERSION\tKIND")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", entry.ID, entry.Version, entry.Kind)
	}
	return tw.Flush()
}
