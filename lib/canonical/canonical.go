// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"bytes"

	"github.com/bureau-foundation/flowtypes/lib/codec"
)

// Decode parses one CBOR data item into a value tree. Malformed input
// fails with *DecodeError before any canonical rule is checked, so a
// truncated document is never reported as a float or tag violation.
// Map entries of the result are in canonical order.
func Decode(data []byte) (Value, error) {
	if err := codec.Wellformed(data); err != nil {
		return Value{}, &DecodeError{Err: err}
	}

	var value Value
	if err := codec.UnmarshalUntagged(data, &value); err != nil {
		return Value{}, classifyDecode(err)
	}
	return value, nil
}

// Canonicalize decodes data and re-encodes it in canonical form. The
// input may use any key order, indefinite lengths, or non-minimal
// integer heads; it may not contain floats, tags, non-text map keys, or
// duplicate keys.
func Canonicalize(data []byte) ([]byte, error) {
	value, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return value.Normalize().Canonical()
}

// EnsureCanonical succeeds only when data is byte-for-byte its own
// canonical form. Semantically equivalent input in a different byte
// layout fails with ErrNotCanonical.
func EnsureCanonical(data []byte) error {
	canonical, err := Canonicalize(data)
	if err != nil {
		return err
	}
	if !bytes.Equal(data, canonical) {
		return ErrNotCanonical
	}
	return nil
}

// ToCanonical encodes v through lib/codec and canonicalizes the
// result. Struct fields and map keys end up in canonical order; float
// fields anywhere in v make it fail with ErrFloatNotAllowed.
func ToCanonical(v any) ([]byte, error) {
	interim, err := codec.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return Canonicalize(interim)
}

// FromCBOR decodes data into v without enforcing canonical rules.
func FromCBOR(data []byte, v any) error {
	if err := codec.Unmarshal(data, v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
