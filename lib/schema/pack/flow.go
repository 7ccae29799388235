// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/ref"
)

// Flow is a directed graph of nodes.
type Flow struct {
	SchemaVersion string     `json:"schema_version"`
	ID            ref.FlowID `json:"id"`
	Kind          FlowKind   `json:"kind"`

	// Entrypoints maps entrypoint names to their configuration.
	Entrypoints map[string]canonical.Value `json:"entrypoints"`

	// Nodes in declaration order. Node IDs are unique within a flow.
	Nodes []Node `json:"nodes"`

	Metadata *canonical.Value `json:"metadata,omitempty"`
}

// Node returns the node with the given ID.
func (f *Flow) Node(id ref.NodeID) (*Node, bool) {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}

// Node is one step of a flow.
type Node struct {
	ID        ref.NodeID   `json:"id"`
	Component ComponentRef `json:"component"`

	// Input maps flow state into the operation's input.
	Input *canonical.Value `json:"input,omitempty"`

	// Output maps the operation's result back into flow state.
	Output *canonical.Value `json:"output,omitempty"`

	Routing Routing `json:"routing"`

	Telemetry *canonical.Value `json:"telemetry,omitempty"`
}

// ComponentRef names the component that executes a node.
type ComponentRef struct {
	ID ref.ComponentID `json:"id"`

	// PackAlias selects a component from a dependency instead of
	// this pack. Empty for local components.
	PackAlias string `json:"pack_alias,omitempty"`

	// Operation selects one of the component's operations. Empty
	// uses the component's default.
	Operation string `json:"operation,omitempty"`
}
