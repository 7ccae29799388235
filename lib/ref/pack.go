// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// PackID identifies a pack across the platform (e.g., "acme.billing").
// Dependencies name other packs by PackID.
//
// PackID is an immutable value type. The zero value is not valid; use
// IsZero to check.
type PackID struct {
	id string
}

// ParsePackID validates and wraps a raw pack ID string.
func ParsePackID(raw string) (PackID, error) {
	if err := validateIdentifier(raw, "pack ID"); err != nil {
		return PackID{}, err
	}
	return PackID{id: raw}, nil
}

// MustParsePackID is like ParsePackID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParsePackID(raw string) PackID {
	id, err := ParsePackID(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParsePackID(%q): %v", raw, err))
	}
	return id
}

// String returns the identifier string (e.g., "acme.billing").
func (r PackID) String() string { return r.id }

// IsZero reports whether the PackID is the zero value (uninitialized).
func (r PackID) IsZero() bool { return r.id == "" }

// MarshalText implements encoding.TextMarshaler.
func (r PackID) MarshalText() ([]byte, error) {
	return []byte(r.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Validates the
// identifier. An empty input produces the zero value.
func (r *PackID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*r = PackID{}
		return nil
	}
	parsed, err := ParsePackID(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
