// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"slices"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/ref"
)

// Component is a component bundled in a pack.
type Component struct {
	ID ref.ComponentID `json:"id"`

	// Version is the component's semantic version without a "v"
	// prefix.
	Version string `json:"version"`

	// Supports lists the flow kinds the component can take part in.
	Supports []FlowKind `json:"supports"`

	// World is the interface world the component binds to.
	World string `json:"world"`

	Profiles Profiles `json:"profiles"`

	// Capabilities is the capability contract the component
	// requires from its host (filesystem, network, secrets, ...).
	Capabilities *canonical.Value `json:"capabilities,omitempty"`

	Configurators *Configurators `json:"configurators,omitempty"`

	Operations []Operation `json:"operations"`

	// ConfigSchema describes the component's configuration.
	ConfigSchema *canonical.Value `json:"config_schema,omitempty"`

	Resources ResourceHints `json:"resources"`

	// DevFlows maps flow identifiers to development-time flow
	// graphs shipped with the component.
	DevFlows map[string]DevFlow `json:"dev_flows,omitempty"`
}

// SupportsKind reports whether the component takes part in flows of
// the given kind.
func (c *Component) SupportsKind(kind FlowKind) bool {
	return slices.Contains(c.Supports, kind)
}

// Profiles lists the runtime profiles a component offers.
type Profiles struct {
	Default   string   `json:"default,omitempty"`
	Supported []string `json:"supported"`
}

// Configurators names flows that configure a component.
type Configurators struct {
	Basic ref.FlowID `json:"basic"`
	Full  ref.FlowID `json:"full"`
}

// Operation is an operation a component exposes to flow nodes.
type Operation struct {
	Name         string           `json:"name"`
	InputSchema  *canonical.Value `json:"input_schema,omitempty"`
	OutputSchema *canonical.Value `json:"output_schema,omitempty"`
}

// ResourceHints are scheduling hints. Zero means no hint.
type ResourceHints struct {
	CPUMillis        uint32 `json:"cpu_millis,omitempty"`
	MemoryMB         uint32 `json:"memory_mb,omitempty"`
	AverageLatencyMS uint32 `json:"average_latency_ms,omitempty"`
}

// DevFlow is a flow graph used while developing a component.
type DevFlow struct {
	Format string           `json:"format"`
	Graph  *canonical.Value `json:"graph,omitempty"`
}
