// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// ComponentID identifies a component within a pack. Flow nodes refer to
// the component that executes them by ComponentID.
//
// ComponentID is an immutable value type. The zero value is not valid; use
// IsZero to check.
type ComponentID struct {
	id string
}

// ParseComponentID validates and wraps a raw component ID string.
func ParseComponentID(raw string) (ComponentID, error) {
	if err := validateIdentifier(raw, "component ID"); err != nil {
		return ComponentID{}, err
	}
	return ComponentID{id: raw}, nil
}

// MustParseComponentID is like ParseComponentID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseComponentID(raw string) ComponentID {
	id, err := ParseComponentID(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseComponentID(%q): %v", raw, err))
	}
	return id
}

// String returns the identifier string (e.g., "acme.http-client").
func (r ComponentID) String() string { return r.id }

// IsZero reports whether the ComponentID is the zero value (uninitialized).
func (r ComponentID) IsZero() bool { return r.id == "" }

// MarshalText implements encoding.TextMarshaler.
func (r ComponentID) MarshalText() ([]byte, error) {
	return []byte(r.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Validates the
// identifier. An empty input produces the zero value.
func (r *ComponentID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*r = ComponentID{}
		return nil
	}
	parsed, err := ParseComponentID(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
