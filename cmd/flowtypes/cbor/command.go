// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor implements "flowtypes cbor": canonicalize, validate,
// inspect, and convert canonical CBOR documents.
package cbor

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
)

// inputParams are shared by every subcommand that reads CBOR.
type inputParams struct {
	HexInput bool `flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
}

// outputParams are shared by every subcommand that writes CBOR.
type outputParams struct {
	HexOutput bool `flag:"hex-output,X" desc:"write hex instead of binary CBOR"`
}

// Command returns the "cbor" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "cbor",
		Summary: "Canonicalize, validate, and inspect CBOR documents",
		Description: `Tools for canonical CBOR documents.

A canonical document has definite lengths only, minimal integer
encodings, text-string map keys sorted by encoded length and then
bytewise, no floats, no tags, and no duplicate keys. Equal documents
have identical bytes, so their content identifiers match.

Every subcommand reads from an optional trailing file path, or stdin.
With --hex, input is hex-encoded rather than raw binary.`,
		Subcommands: []*cli.Command{
			canonicalizeCommand(),
			validateCommand(),
			decodeCommand(),
			encodeCommand(),
			diagCommand(),
		},
	}
}

// writeCBOR writes data to w as binary, or as a hex line.
func writeCBOR(w io.Writer, data []byte, hexOutput bool) error {
	if hexOutput {
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	_, err := w.Write(data)
	return err
}
