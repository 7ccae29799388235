// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/flowtypes/lib/ref"
)

// Validate checks the manifest's structure: required fields, enum
// values, semantic versions, uniqueness of component, flow, and
// capability identifiers, and that routing targets resolve within
// their flow. It returns the first problem found.
func (m *Manifest) Validate() error {
	if m.SchemaVersion == "" {
		return errors.New("pack manifest: schema_version is required")
	}
	if m.PackID.IsZero() {
		return errors.New("pack manifest: pack_id is required")
	}
	if err := ValidateVersion(m.Version); err != nil {
		return fmt.Errorf("pack manifest: version: %w", err)
	}
	if !m.Kind.IsKnown() {
		if m.Kind == "" {
			return errors.New("pack manifest: kind is required")
		}
		return fmt.Errorf("pack manifest: unknown kind %q", m.Kind)
	}
	if m.Publisher == "" {
		return errors.New("pack manifest: publisher is required")
	}

	components := make(map[ref.ComponentID]bool, len(m.Components))
	for i := range m.Components {
		component := &m.Components[i]
		if err := component.Validate(); err != nil {
			return fmt.Errorf("pack manifest: components[%d]: %w", i, err)
		}
		if components[component.ID] {
			return fmt.Errorf("pack manifest: components[%d]: duplicate component id %q", i, component.ID)
		}
		components[component.ID] = true
	}

	aliases := make(map[string]bool, len(m.Dependencies))
	for i := range m.Dependencies {
		dependency := &m.Dependencies[i]
		if err := dependency.Validate(); err != nil {
			return fmt.Errorf("pack manifest: dependencies[%d]: %w", i, err)
		}
		if aliases[dependency.Alias] {
			return fmt.Errorf("pack manifest: dependencies[%d]: duplicate alias %q", i, dependency.Alias)
		}
		aliases[dependency.Alias] = true
	}

	flows := make(map[ref.FlowID]bool, len(m.Flows))
	for i := range m.Flows {
		entry := &m.Flows[i]
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("pack manifest: flows[%d]: %w", i, err)
		}
		if flows[entry.ID] {
			return fmt.Errorf("pack manifest: flows[%d]: duplicate flow id %q", i, entry.ID)
		}
		flows[entry.ID] = true
		for j := range entry.Flow.Nodes {
			node := &entry.Flow.Nodes[j]
			if alias := node.Component.PackAlias; alias != "" && !aliases[alias] {
				return fmt.Errorf("pack manifest: flows[%d]: node %q: pack_alias %q names no dependency",
					i, node.ID, alias)
			}
		}
	}

	capabilities := make(map[string]bool, len(m.Capabilities))
	for i, capability := range m.Capabilities {
		if capability.Name == "" {
			return fmt.Errorf("pack manifest: capabilities[%d]: name is required", i)
		}
		if capabilities[capability.Name] {
			return fmt.Errorf("pack manifest: capabilities[%d]: duplicate capability %q", i, capability.Name)
		}
		capabilities[capability.Name] = true
	}

	for i, secret := range m.SecretRequirements {
		if secret.Key == "" {
			return fmt.Errorf("pack manifest: secret_requirements[%d]: key is required", i)
		}
	}
	for name, extension := range m.Extensions {
		if extension.Kind == "" {
			return fmt.Errorf("pack manifest: extensions[%q]: kind is required", name)
		}
	}
	return nil
}

// Validate checks a component's required fields and versions.
func (c *Component) Validate() error {
	if c.ID.IsZero() {
		return errors.New("id is required")
	}
	if err := ValidateVersion(c.Version); err != nil {
		return fmt.Errorf("component %q: version: %w", c.ID, err)
	}
	for _, kind := range c.Supports {
		if !kind.IsKnown() {
			return fmt.Errorf("component %q: unknown flow kind %q in supports", c.ID, kind)
		}
	}
	if c.World == "" {
		return fmt.Errorf("component %q: world is required", c.ID)
	}
	for i, operation := range c.Operations {
		if operation.Name == "" {
			return fmt.Errorf("component %q: operations[%d]: name is required", c.ID, i)
		}
	}
	return nil
}

// Validate checks a dependency's required fields and its version
// requirement.
func (d *Dependency) Validate() error {
	if d.Alias == "" {
		return errors.New("alias is required")
	}
	if d.PackID.IsZero() {
		return fmt.Errorf("dependency %q: pack_id is required", d.Alias)
	}
	if err := ValidateVersionReq(d.VersionReq); err != nil {
		return fmt.Errorf("dependency %q: %w", d.Alias, err)
	}
	return nil
}

// Validate checks a flow entry and its flow graph.
func (e *FlowEntry) Validate() error {
	if e.ID.IsZero() {
		return errors.New("id is required")
	}
	if !e.Kind.IsKnown() {
		return fmt.Errorf("flow %q: unknown kind %q", e.ID, e.Kind)
	}
	if err := e.Flow.Validate(); err != nil {
		return fmt.Errorf("flow %q: %w", e.ID, err)
	}
	if e.Flow.ID != e.ID {
		return fmt.Errorf("flow %q: flow body has id %q", e.ID, e.Flow.ID)
	}
	for _, name := range e.Entrypoints {
		if _, ok := e.Flow.Entrypoints[name]; !ok {
			return fmt.Errorf("flow %q: exposed entrypoint %q is not defined by the flow", e.ID, name)
		}
	}
	return nil
}

// Validate checks that node IDs are unique and that every routing
// target names a node of this flow.
func (f *Flow) Validate() error {
	if f.ID.IsZero() {
		return errors.New("id is required")
	}
	if !f.Kind.IsKnown() {
		return fmt.Errorf("unknown kind %q", f.Kind)
	}
	nodes := make(map[ref.NodeID]bool, len(f.Nodes))
	for i := range f.Nodes {
		node := &f.Nodes[i]
		if node.ID.IsZero() {
			return fmt.Errorf("nodes[%d]: id is required", i)
		}
		if nodes[node.ID] {
			return fmt.Errorf("nodes[%d]: duplicate node id %q", i, node.ID)
		}
		nodes[node.ID] = true
		if node.Component.ID.IsZero() {
			return fmt.Errorf("node %q: component id is required", node.ID)
		}
		if err := node.Routing.Validate(); err != nil {
			return fmt.Errorf("node %q: %w", node.ID, err)
		}
	}
	for i := range f.Nodes {
		for _, target := range f.Nodes[i].Routing.Targets() {
			if !nodes[target] {
				return fmt.Errorf("node %q: routing target %q is not a node of this flow", f.Nodes[i].ID, target)
			}
		}
	}
	return nil
}
