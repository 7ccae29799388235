// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/lib/canonical"
)

type decodeParams struct {
	inputParams
	Compact bool `flag:"compact,c" desc:"compact output (no indentation)"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a CBOR document to JSON",
		Description: `Decode a CBOR document and write it as JSON with map keys in
canonical order. Byte strings are written as base64 text. Use
"flowtypes cbor diag" to see exact CBOR types.`,
		Usage:  "flowtypes cbor decode [-x] [-c] [file]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("decode", remaining); err != nil {
				return err
			}
			return decodeCBOR(data, os.Stdout, params.Compact)
		},
	}
}

func decodeCBOR(data []byte, w io.Writer, compact bool) error {
	if len(data) == 0 {
		return errors.New("empty input: expected CBOR data")
	}
	value, err := canonical.Decode(data)
	if err != nil {
		return err
	}
	output, err := value.MarshalJSON()
	if err != nil {
		return err
	}
	if !compact {
		var indented bytes.Buffer
		if err := json.Indent(&indented, output, "", "  "); err != nil {
			return err
		}
		output = indented.Bytes()
	}
	_, err = fmt.Fprintf(w, "%s\n", output)
	return err
}

func encodeCommand() *cli.Command {
	var params outputParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to a canonical CBOR document",
		Description: `Read JSON (comments and trailing commas allowed) and write the
canonical CBOR encoding. Numbers must be integers; JSON has no byte
strings, so every string becomes a CBOR text string.`,
		Usage:  "flowtypes cbor encode [-X] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Encode and inspect",
				Command:     "echo '{\"b\":1,\"a\":2}' | flowtypes cbor encode | flowtypes cbor diag",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, false, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("encode", remaining); err != nil {
				return err
			}
			return encodeJSON(data, os.Stdout, params.HexOutput)
		},
	}
}

func encodeJSON(data []byte, w io.Writer, hexOutput bool) error {
	value, err := canonical.FromJSON(jsonc.ToJSON(data))
	if err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	encoded, err := value.Canonical()
	if err != nil {
		return err
	}
	return writeCBOR(w, encoded, hexOutput)
}
