// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/lib/codec"
)

func diagCommand() *cli.Command {
	var params inputParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Print CBOR in diagnostic notation",
		Description: `Write RFC 8949 diagnostic notation for each item of the input,
one per line. Unlike JSON, diagnostic notation keeps CBOR types:
byte strings appear as h'..', and floats and tags are shown as-is,
which makes it the tool for finding why a document is rejected.`,
		Usage:  "flowtypes cbor diag [-x] [file]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("diag", remaining); err != nil {
				return err
			}
			return diagCBOR(data, os.Stdout)
		},
	}
}

// diagCBOR writes diagnostic notation for each item of a CBOR
// sequence in data.
func diagCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return errors.New("empty input: expected CBOR data")
	}
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			return fmt.Errorf("diagnose CBOR at byte %d: %w", len(data)-len(remaining), err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
