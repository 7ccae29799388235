// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest implements "flowtypes manifest": converting pack
// manifests between their authored JSONC form and the compact
// symbol-table CBOR form.
package manifest

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/lib/contentid"
	"github.com/bureau-foundation/flowtypes/lib/packcodec"
	"github.com/bureau-foundation/flowtypes/lib/schema/pack"
)

// Command returns the "manifest" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "manifest",
		Summary: "Encode, decode, and inspect pack manifests",
		Description: `Pack manifests are authored as JSON (comments and trailing commas
allowed) and distributed as compact canonical CBOR, where component
IDs, node IDs, capability names, and pack IDs are replaced by indices
into sorted symbol tables embedded in the document.`,
		Subcommands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			symbolsCommand(),
		},
	}
}

type encodeParams struct {
	HexOutput  bool `flag:"hex-output,X" desc:"write hex instead of binary CBOR"`
	NoValidate bool `flag:"no-validate" desc:"skip structural validation of the manifest"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode a JSONC manifest to canonical CBOR",
		Description: `Read a manifest in JSON or JSONC, validate it, and write its
compact canonical CBOR encoding. The manifest's content identifier is
logged. Encoding the same manifest always yields the same bytes.`,
		Usage:  "flowtypes manifest encode [-X] [--no-validate] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Encode a manifest",
				Command:     "flowtypes manifest encode pack.jsonc > pack.cbor",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, false, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("encode", remaining); err != nil {
				return err
			}
			return encodeManifest(data, &params, os.Stdout, logger)
		},
	}
}

func encodeManifest(data []byte, params *encodeParams, w io.Writer, logger *slog.Logger) error {
	manifest, err := pack.ParseManifest(data)
	if err != nil {
		return err
	}
	if !params.NoValidate {
		if err := manifest.Validate(); err != nil {
			return err
		}
	}
	encoded, err := packcodec.Encode(manifest)
	if err != nil {
		return err
	}
	id, err := contentid.DeriveStrict(encoded, contentid.DocumentPrefix)
	if err != nil {
		return err
	}
	logger.Info("encoded manifest",
		"pack_id", manifest.PackID.String(),
		"version", manifest.Version,
		"size", len(encoded),
		"id", id.String(),
	)

	if params.HexOutput {
		_, err = fmt.Fprintln(w, hex.EncodeToString(encoded))
		return err
	}
	_, err = w.Write(encoded)
	return err
}

type decodeParams struct {
	HexInput bool `flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a CBOR manifest to JSON",
		Description: `Read an encoded manifest, resolve every symbol index, and print the
manifest as JSON. Manifests from older tooling that stored the pack
ID as a string are accepted.`,
		Usage:  "flowtypes manifest decode [-x] [file]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("decode", remaining); err != nil {
				return err
			}
			return decodeManifest(data, os.Stdout)
		},
	}
}

func decodeManifest(data []byte, w io.Writer) error {
	manifest, err := packcodec.Decode(data)
	if err != nil {
		return err
	}
	return cli.WriteJSON(w, manifest)
}

func symbolsCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "symbols",
		Summary: "Print the symbol tables of a CBOR manifest",
		Usage:   "flowtypes manifest symbols [-x] [file]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("symbols", remaining); err != nil {
				return err
			}
			tables, err := packcodec.Tables(data)
			if err != nil {
				return err
			}
			return cli.WriteJSON(os.Stdout, tables)
		},
	}
}
