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
	"github.com/bureau-foundation/flowtypes/lib/canonical"
)

type canonicalizeParams struct {
	inputParams
	outputParams
}

func canonicalizeCommand() *cli.Command {
	var params canonicalizeParams

	return &cli.Command{
		Name:    "canonicalize",
		Summary: "Rewrite a CBOR document in canonical form",
		Description: `Decode a CBOR document and re-encode it canonically: map keys
reordered, indefinite lengths made definite, integer heads minimized.

Documents containing floats, tags, non-text map keys, or duplicate
keys have no canonical form and are rejected.`,
		Usage:  "flowtypes cbor canonicalize [-x] [-X] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Canonicalize a hex document and print hex",
				Command:     "echo 'a2616201616102' | flowtypes cbor canonicalize -x -X",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("canonicalize", remaining); err != nil {
				return err
			}
			return canonicalizeCBOR(data, os.Stdout, params.HexOutput)
		},
	}
}

func canonicalizeCBOR(data []byte, w io.Writer, hexOutput bool) error {
	if len(data) == 0 {
		return errors.New("empty input: expected CBOR data")
	}
	canonicalBytes, err := canonical.Canonicalize(data)
	if err != nil {
		return fmt.Errorf("canonicalize: %w", err)
	}
	return writeCBOR(w, canonicalBytes, hexOutput)
}
