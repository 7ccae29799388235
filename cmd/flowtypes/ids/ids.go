// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ids implements the identifier commands: "flowtypes id",
// "flowtypes i18n", and "flowtypes schemas".
package ids

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/lib/contentid"
)

// Command returns the "id" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "id",
		Summary: "Derive and parse content identifiers",
		Description: `Content identifiers name canonical documents by their hash:
"<namespace>:v<version>:" followed by the first 16 bytes of the BLAKE3
digest of the canonical bytes, in Crockford Base32.`,
		Subcommands: []*cli.Command{
			deriveCommand(),
			parseCommand(),
		},
	}
}

type deriveParams struct {
	cli.ConfigParams
	HexInput  bool   `flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
	Namespace string `flag:"namespace,n" desc:"identifier namespace (default: ids.namespace from config)"`
	Version   uint   `flag:"id-version" desc:"identifier version (default: ids.version from config)"`
	Schema    bool   `flag:"schema" desc:"derive a schema identifier (ids.schema_namespace, v1)"`
	Strict    bool   `flag:"strict" desc:"require the input to already be canonical"`
}

func deriveCommand() *cli.Command {
	var params deriveParams

	return &cli.Command{
		Name:    "derive",
		Summary: "Compute the content identifier of a CBOR document",
		Description: `Canonicalize a CBOR document and print its content identifier.

With --strict, the document must already be canonical; any layout
difference is an error. Without it, documents that differ only in key
order or length encoding derive the same identifier.`,
		Usage:  "flowtypes id derive [-x] [--strict] [--schema | -n namespace] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Identify a schema document",
				Command:     "flowtypes id derive --schema --strict pack-describe.cbor",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("derive", remaining); err != nil {
				return err
			}
			prefix, err := params.prefix()
			if err != nil {
				return err
			}
			logger.Debug("deriving identifier", "prefix", prefix.String(), "strict", params.Strict)
			return deriveID(data, prefix, params.Strict, os.Stdout)
		},
	}
}

// prefix resolves the identifier prefix from flags, then config.
func (p *deriveParams) prefix() (contentid.Prefix, error) {
	cfg, err := p.LoadConfig()
	if err != nil {
		return contentid.Prefix{}, err
	}
	prefix := contentid.Prefix{Namespace: cfg.IDs.Namespace, Version: cfg.IDs.Version}
	if p.Schema {
		prefix = contentid.Prefix{Namespace: cfg.IDs.SchemaNamespace, Version: contentid.SchemaPrefix.Version}
	}
	if p.Namespace != "" {
		prefix.Namespace = p.Namespace
	}
	if p.Version != 0 {
		prefix.Version = p.Version
	}
	return prefix, prefix.Validate()
}

func deriveID(data []byte, prefix contentid.Prefix, strict bool, w io.Writer) error {
	if len(data) == 0 {
		return errors.New("empty input: expected CBOR data")
	}
	derive := contentid.Derive
	if strict {
		derive = contentid.DeriveStrict
	}
	id, err := derive(data, prefix)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, id)
	return err
}

type parseParams struct {
	cli.JSONOutput
}

// parsedID is the --json form of "id parse".
type parsedID struct {
	ID        string `json:"id"`
	Namespace string `json:"namespace"`
	Version   uint   `json:"version"`
	Payload   string `json:"payload"`
	Digest    string `json:"digest"`
}

func parseCommand() *cli.Command {
	var params parseParams

	return &cli.Command{
		Name:    "parse",
		Summary: "Validate a content identifier and show its digest",
		Description: `Parse a content identifier of any namespace and print its parts.
Lowercase payloads and the Crockford aliases I, L (for 1) and O (for
0) are accepted; the printed identifier is the normalized form.`,
		Usage:  "flowtypes id parse [--json] <id>",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("parse takes exactly one identifier, got %d arguments", len(args))
			}
			return parseID(args[0], &params, os.Stdout)
		},
	}
}

func parseID(text string, params *parseParams, w io.Writer) error {
	id, err := contentid.ParseAny(text)
	if err != nil {
		return err
	}
	digest, err := id.Digest()
	if err != nil {
		return err
	}
	result := parsedID{
		ID:        id.String(),
		Namespace: id.Prefix().Namespace,
		Version:   id.Prefix().Version,
		Payload:   id.Payload(),
		Digest:    hex.EncodeToString(digest[:]),
	}
	if done, err := params.EmitJSON(w, result); done {
		return err
	}
	_, err = fmt.Fprintf(w, "id:        %s\nnamespace: %s\nversion:   %d\ndigest:    %s\n",
		result.ID, result.Namespace, result.Version, result.Digest)
	return err
}
