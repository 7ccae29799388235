// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package store implements "flowtypes store": putting canonical
// documents into the local document store and reading them back by
// content identifier.
package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/config"
	"github.com/bureau-foundation/flowtypes/lib/contentid"
	"github.com/bureau-foundation/flowtypes/lib/docstore"
)

// Command returns the "store" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "store",
		Summary: "Store and retrieve canonical documents",
		Description: `The document store keeps canonical CBOR documents under their
content identifiers in store.root, compressed as configured by
store.compression. Every read re-derives the identifier and rejects
content that no longer matches.`,
		Subcommands: []*cli.Command{
			putCommand(),
			getCommand(),
		},
	}
}

type putParams struct {
	cli.ConfigParams
	HexInput     bool `flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
	Canonicalize bool `flag:"canonicalize" desc:"canonicalize the input before storing it"`
}

func putCommand() *cli.Command {
	var params putParams

	return &cli.Command{
		Name:    "put",
		Summary: "Store a canonical CBOR document",
		Description: `Store a document and print its identifier. The document must be
canonical unless --canonicalize is given. Storing a document that is
already present is a no-op.`,
		Usage:  "flowtypes store put [-x] [--canonicalize] [file]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("put", remaining); err != nil {
				return err
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			documents, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			return putDocument(documents, data, params.Canonicalize, os.Stdout)
		},
	}
}

func putDocument(documents *docstore.Store, data []byte, canonicalize bool, w io.Writer) error {
	if len(data) == 0 {
		return errors.New("empty input: expected CBOR data")
	}
	if canonicalize {
		var err error
		data, err = canonical.Canonicalize(data)
		if err != nil {
			return err
		}
	}
	id, err := documents.Put(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, id)
	return err
}

type getParams struct {
	cli.ConfigParams
	HexOutput bool `flag:"hex-output,X" desc:"write hex instead of binary CBOR"`
}

func getCommand() *cli.Command {
	var params getParams

	return &cli.Command{
		Name:    "get",
		Summary: "Read a document by identifier",
		Usage:   "flowtypes store get [-X] <id>",
		Params:  func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Print a stored document in diagnostic notation",
				Command:     "flowtypes store get doc:v1:0123456789ABCDEFGHJKMNPQR0 | flowtypes cbor diag",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("usage: flowtypes store get [-X] <id>")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			documents, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			return getDocument(documents, args[0], params.HexOutput, os.Stdout)
		},
	}
}

func getDocument(documents *docstore.Store, text string, hexOutput bool, w io.Writer) error {
	id, err := contentid.ParseAny(text)
	if err != nil {
		return err
	}
	document, err := documents.Get(id)
	if err != nil {
		return err
	}
	if hexOutput {
		_, err = fmt.Fprintln(w, hex.EncodeToString(document))
		return err
	}
	_, err = w.Write(document)
	return err
}

func openStore(cfg *config.Config, logger *slog.Logger) (*docstore.Store, error) {
	compression, err := docstore.ParseCompressionTag(cfg.Store.Compression)
	if err != nil {
		return nil, err
	}
	return docstore.Open(cfg.Store.Root, docstore.Options{
		Compression: compression,
		Prefix:      contentid.Prefix{Namespace: cfg.IDs.Namespace, Version: cfg.IDs.Version},
		Logger:      logger,
	})
}
