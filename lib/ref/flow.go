// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// FlowID identifies a flow inside a pack.
//
// FlowID is an immutable value type. The zero value is not valid; use
// IsZero to check.
type FlowID struct {
	id string
}

// ParseFlowID validates and wraps a raw flow ID string.
func ParseFlowID(raw string) (FlowID, error) {
	if err := validateIdentifier(raw, "flow ID"); err != nil {
		return FlowID{}, err
	}
	return FlowID{id: raw}, nil
}

// MustParseFlowID is like ParseFlowID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseFlowID(raw string) FlowID {
	id, err := ParseFlowID(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseFlowID(%q): %v", raw, err))
	}
	return id
}

// String returns the identifier string (e.g., "on_message").
func (r FlowID) String() string { return r.id }

// IsZero reports whether the FlowID is the zero value (uninitialized).
func (r FlowID) IsZero() bool { return r.id == "" }

// MarshalText implements encoding.TextMarshaler.
func (r FlowID) MarshalText() ([]byte, error) {
	return []byte(r.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Validates the
// identifier. An empty input produces the zero value.
func (r *FlowID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*r = FlowID{}
		return nil
	}
	parsed, err := ParseFlowID(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
