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

func validateCommand() *cli.Command {
	var params inputParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether a CBOR document is canonical",
		Description: `Verify that a CBOR document is byte-for-byte its own canonical
form. Prints "canonical" and exits 0 if so. Otherwise prints the
violated rule, or the first differing byte offset, and exits 1.`,
		Usage:  "flowtypes cbor validate [-x] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Validate a stored document",
				Command:     "flowtypes cbor validate manifest.cbor",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, remaining, err := cli.ReadInput(args, params.HexInput, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoArgs("validate", remaining); err != nil {
				return err
			}
			return validateCBOR(data, os.Stdout)
		},
	}
}

// validateCBOR reports on w whether data is canonical. A well-formed
// but non-canonical document is reported and returns an ExitError;
// input that is not CBOR at all returns the decode error.
func validateCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return errors.New("empty input: expected CBOR data")
	}

	err := canonical.EnsureCanonical(data)
	if err == nil {
		fmt.Fprintln(w, "canonical")
		return nil
	}

	var decodeErr *canonical.DecodeError
	if errors.As(err, &decodeErr) {
		return err
	}
	// A bare ErrNotCanonical is a layout difference only: locate it.
	if err == canonical.ErrNotCanonical {
		canonicalBytes, canonicalizeErr := canonical.Canonicalize(data)
		if canonicalizeErr != nil {
			return canonicalizeErr
		}
		fmt.Fprintf(w, "not canonical: first difference at byte %d (input %d bytes, canonical %d bytes)\n",
			firstDifference(data, canonicalBytes), len(data), len(canonicalBytes))
	} else {
		fmt.Fprintf(w, "not canonical: %v\n", err)
	}
	return &cli.ExitError{Code: 1}
}

func firstDifference(a, b []byte) int {
	offset := 0
	for offset < min(len(a), len(b)) && a[offset] == b[offset] {
		offset++
	}
	return offset
}
