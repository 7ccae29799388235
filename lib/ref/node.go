// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// NodeID identifies a node inside a flow graph. Routing decisions name
// their target nodes by NodeID.
//
// NodeID is an immutable value type. The zero value is not valid; use
// IsZero to check.
type NodeID struct {
	id string
}

// ParseNodeID validates and wraps a raw node ID string.
func ParseNodeID(raw string) (NodeID, error) {
	if err := validateIdentifier(raw, "node ID"); err != nil {
		return NodeID{}, err
	}
	return NodeID{id: raw}, nil
}

// MustParseNodeID is like ParseNodeID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseNodeID(raw string) NodeID {
	id, err := ParseNodeID(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseNodeID(%q): %v", raw, err))
	}
	return id
}

// String returns the identifier string (e.g., "start").
func (r NodeID) String() string { return r.id }

// IsZero reports whether the NodeID is the zero value (uninitialized).
func (r NodeID) IsZero() bool { return r.id == "" }

// MarshalText implements encoding.TextMarshaler.
func (r NodeID) MarshalText() ([]byte, error) {
	return []byte(r.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Validates the
// identifier. An empty input produces the zero value.
func (r *NodeID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*r = NodeID{}
		return nil
	}
	parsed, err := ParseNodeID(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
