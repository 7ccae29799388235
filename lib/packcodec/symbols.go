// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package packcodec

import (
	"slices"

	"github.com/bureau-foundation/flowtypes/lib/schema/pack"
)

// SymbolTables are the four identifier tables embedded in an encoded
// manifest. Each is sorted ascending with no duplicates.
type SymbolTables struct {
	ComponentIDs    []string `cbor:"component_ids" json:"component_ids"`
	NodeIDs         []string `cbor:"node_ids" json:"node_ids"`
	CapabilityNames []string `cbor:"capability_names" json:"capability_names"`
	PackIDs         []string `cbor:"pack_ids" json:"pack_ids"`
}

// SymbolIndexes map each table entry back to its position.
type SymbolIndexes struct {
	ComponentIDs    map[string]uint32
	NodeIDs         map[string]uint32
	CapabilityNames map[string]uint32
	PackIDs         map[string]uint32
}

// BuildSymbols scans a manifest and builds its symbol tables. The scan
// collects: the manifest's pack ID; every component's ID; every node
// ID and the component ID each node references; every dependency's
// pack ID and required capability names; and every declared
// capability name. Identifiers are collected even when nothing else
// refers to them; no semantic validation happens here.
func BuildSymbols(manifest *pack.Manifest) (SymbolTables, SymbolIndexes) {
	componentIDs := make(map[string]struct{})
	nodeIDs := make(map[string]struct{})
	capabilityNames := make(map[string]struct{})
	packIDs := make(map[string]struct{})

	packIDs[manifest.PackID.String()] = struct{}{}

	for i := range manifest.Components {
		componentIDs[manifest.Components[i].ID.String()] = struct{}{}
	}

	for i := range manifest.Flows {
		for j := range manifest.Flows[i].Flow.Nodes {
			node := &manifest.Flows[i].Flow.Nodes[j]
			nodeIDs[node.ID.String()] = struct{}{}
			componentIDs[node.Component.ID.String()] = struct{}{}
		}
	}

	for i := range manifest.Dependencies {
		dependency := &manifest.Dependencies[i]
		packIDs[dependency.PackID.String()] = struct{}{}
		for _, name := range dependency.RequiredCapabilities {
			capabilityNames[name] = struct{}{}
		}
	}

	for i := range manifest.Capabilities {
		capabilityNames[manifest.Capabilities[i].Name] = struct{}{}
	}

	var tables SymbolTables
	var indexes SymbolIndexes
	tables.ComponentIDs, indexes.ComponentIDs = indexSet(componentIDs)
	tables.NodeIDs, indexes.NodeIDs = indexSet(nodeIDs)
	tables.CapabilityNames, indexes.CapabilityNames = indexSet(capabilityNames)
	tables.PackIDs, indexes.PackIDs = indexSet(packIDs)
	return tables, indexes
}

// indexSet sorts a set and assigns each member its position.
func indexSet(set map[string]struct{}) ([]string, map[string]uint32) {
	values := make([]string, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	slices.Sort(values)

	positions := make(map[string]uint32, len(values))
	for index, value := range values {
		positions[value] = uint32(index)
	}
	return values, positions
}

// lookup resolves an identifier to its index for encoding.
func lookup(positions map[string]uint32, table Table, identifier string) (uint32, error) {
	index, ok := positions[identifier]
	if !ok {
		return 0, &InvalidIndexError{Table: table, Index: MissingIndex, Identifier: identifier}
	}
	return index, nil
}

// resolve returns the table entry at index for decoding.
func resolve(values []string, table Table, index uint32) (string, error) {
	if uint64(index) >= uint64(len(values)) {
		return "", &InvalidIndexError{Table: table, Index: uint64(index)}
	}
	return values[index], nil
}
