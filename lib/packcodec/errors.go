// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package packcodec

import "fmt"

// Table names a symbol table.
type Table string

const (
	TableComponentIDs    Table = "component_ids"
	TableNodeIDs         Table = "node_ids"
	TableCapabilityNames Table = "capability_names"
	TablePackIDs         Table = "pack_ids"
)

// MissingIndex is the Index of an InvalidIndexError raised while
// encoding, when an identifier has no entry in its table.
const MissingIndex = ^uint64(0)

// InvalidIndexError reports a symbol reference that does not resolve.
// While decoding, Index is the out-of-range index found in the
// document. While encoding, Index is MissingIndex and Identifier is
// the identifier that had no table entry.
type InvalidIndexError struct {
	Table      Table
	Index      uint64
	Identifier string
}

func (e *InvalidIndexError) Error() string {
	if e.Index == MissingIndex {
		return fmt.Sprintf("packcodec: identifier %q missing from symbol table %s", e.Identifier, e.Table)
	}
	return fmt.Sprintf("packcodec: invalid symbol index %d in %s", e.Index, e.Table)
}

// InvalidIdentifierError reports a resolved string that is not a valid
// identifier, version, or version requirement for the field it fills.
type InvalidIdentifierError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("packcodec: invalid identifier for %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidIdentifierError) Unwrap() error { return e.Err }

// DecodeError reports bytes that could not be parsed into the encoded
// manifest shape at all.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "packcodec: decode failed: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a manifest that could not be serialized.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "packcodec: encode failed: " + e.Err.Error() }

func (e *EncodeError) Unwrap() error { return e.Err }
