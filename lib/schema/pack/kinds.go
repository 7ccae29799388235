// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import "fmt"

// PackKind hints at the primary purpose of a pack.
type PackKind string

const (
	PackKindApplication    PackKind = "application"
	PackKindProvider       PackKind = "provider"
	PackKindInfrastructure PackKind = "infrastructure"
	PackKindLibrary        PackKind = "library"
)

// IsKnown reports whether k is one of the defined PackKind values.
func (k PackKind) IsKnown() bool {
	switch k {
	case PackKindApplication, PackKindProvider, PackKindInfrastructure, PackKindLibrary:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler, rejecting
// unknown kinds.
func (k *PackKind) UnmarshalText(data []byte) error {
	kind := PackKind(data)
	if !kind.IsKnown() {
		return fmt.Errorf("unknown pack kind %q", data)
	}
	*k = kind
	return nil
}

// FlowKind is the trigger family a flow belongs to.
type FlowKind string

const (
	// FlowKindMessaging flows react to inbound messages.
	FlowKindMessaging FlowKind = "messaging"

	// FlowKindEvents flows react to platform events.
	FlowKindEvents FlowKind = "events"
)

// IsKnown reports whether k is one of the defined FlowKind values.
func (k FlowKind) IsKnown() bool {
	switch k {
	case FlowKindMessaging, FlowKindEvents:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler, rejecting
// unknown kinds.
func (k *FlowKind) UnmarshalText(data []byte) error {
	kind := FlowKind(data)
	if !kind.IsKnown() {
		return fmt.Errorf("unknown flow kind %q", data)
	}
	*k = kind
	return nil
}
