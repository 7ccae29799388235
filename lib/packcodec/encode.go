// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package packcodec

import (
	"fmt"

	"github.com/bureau-foundation/flowtypes/lib/codec"
	"github.com/bureau-foundation/flowtypes/lib/schema/pack"
)

// Encode writes a manifest in its compact canonical CBOR form.
// Encoding the same manifest always produces the same bytes.
func Encode(manifest *pack.Manifest) ([]byte, error) {
	encoded, err := toEncoded(manifest)
	if err != nil {
		return nil, err
	}
	data, err := codec.Marshal(encoded)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return data, nil
}

func toEncoded(manifest *pack.Manifest) (*encodedManifest, error) {
	tables, indexes := BuildSymbols(manifest)

	packIndex, err := lookup(indexes.PackIDs, TablePackIDs, manifest.PackID.String())
	if err != nil {
		return nil, err
	}

	encoded := &encodedManifest{
		SchemaVersion:      manifest.SchemaVersion,
		PackID:             indexedPackID(packIndex),
		Name:               manifest.Name,
		Version:            manifest.Version,
		Kind:               manifest.Kind,
		Publisher:          manifest.Publisher,
		Symbols:            tables,
		SecretRequirements: manifest.SecretRequirements,
		Signatures:         manifest.Signatures,
		Bootstrap:          manifest.Bootstrap,
		Extensions:         manifest.Extensions,
	}

	encoded.Components = make([]encodedComponent, 0, len(manifest.Components))
	for i := range manifest.Components {
		component := &manifest.Components[i]
		id, err := lookup(indexes.ComponentIDs, TableComponentIDs, component.ID.String())
		if err != nil {
			return nil, err
		}
		encoded.Components = append(encoded.Components, encodedComponent{
			ID:            id,
			Version:       component.Version,
			Supports:      component.Supports,
			World:         component.World,
			Profiles:      component.Profiles,
			Capabilities:  component.Capabilities,
			Configurators: component.Configurators,
			Operations:    component.Operations,
			ConfigSchema:  component.ConfigSchema,
			Resources:     component.Resources,
			DevFlows:      component.DevFlows,
		})
	}

	encoded.Flows = make([]encodedFlowEntry, 0, len(manifest.Flows))
	for i := range manifest.Flows {
		entry := &manifest.Flows[i]
		flow, err := encodeFlow(&entry.Flow, &indexes)
		if err != nil {
			return nil, fmt.Errorf("flow %q: %w", entry.ID, err)
		}
		encoded.Flows = append(encoded.Flows, encodedFlowEntry{
			ID:          entry.ID.String(),
			Kind:        entry.Kind,
			Flow:        flow,
			Tags:        entry.Tags,
			Entrypoints: entry.Entrypoints,
		})
	}

	encoded.Dependencies = make([]encodedDependency, 0, len(manifest.Dependencies))
	for i := range manifest.Dependencies {
		dependency := &manifest.Dependencies[i]
		packID, err := lookup(indexes.PackIDs, TablePackIDs, dependency.PackID.String())
		if err != nil {
			return nil, err
		}
		required := make([]uint32, 0, len(dependency.RequiredCapabilities))
		for _, name := range dependency.RequiredCapabilities {
			index, err := lookup(indexes.CapabilityNames, TableCapabilityNames, name)
			if err != nil {
				return nil, err
			}
			required = append(required, index)
		}
		encoded.Dependencies = append(encoded.Dependencies, encodedDependency{
			Alias:                dependency.Alias,
			PackID:               packID,
			VersionReq:           dependency.VersionReq,
			RequiredCapabilities: required,
		})
	}

	encoded.Capabilities = make([]encodedCapability, 0, len(manifest.Capabilities))
	for _, capability := range manifest.Capabilities {
		name, err := lookup(indexes.CapabilityNames, TableCapabilityNames, capability.Name)
		if err != nil {
			return nil, err
		}
		encoded.Capabilities = append(encoded.Capabilities, encodedCapability{
			Name:        name,
			Description: capability.Description,
		})
	}

	return encoded, nil
}

func encodeFlow(flow *pack.Flow, indexes *SymbolIndexes) (encodedFlow, error) {
	encoded := encodedFlow{
		SchemaVersion: flow.SchemaVersion,
		ID:            flow.ID.String(),
		Kind:          flow.Kind,
		Entrypoints:   flow.Entrypoints,
		Nodes:         make([]encodedNode, 0, len(flow.Nodes)),
		Metadata:      flow.Metadata,
	}

	for i := range flow.Nodes {
		node := &flow.Nodes[i]
		id, err := lookup(indexes.NodeIDs, TableNodeIDs, node.ID.String())
		if err != nil {
			return encodedFlow{}, err
		}
		componentID, err := lookup(indexes.ComponentIDs, TableComponentIDs, node.Component.ID.String())
		if err != nil {
			return encodedFlow{}, err
		}
		routing, err := encodeRouting(node.Routing, indexes)
		if err != nil {
			return encodedFlow{}, fmt.Errorf("node %q: %w", node.ID, err)
		}
		encoded.Nodes = append(encoded.Nodes, encodedNode{
			ID: id,
			Component: encodedComponentRef{
				ID:        componentID,
				PackAlias: node.Component.PackAlias,
				Operation: node.Component.Operation,
			},
			Input:     node.Input,
			Output:    node.Output,
			Routing:   routing,
			Telemetry: node.Telemetry,
		})
	}
	return encoded, nil
}

func encodeRouting(routing pack.Routing, indexes *SymbolIndexes) (encodedRouting, error) {
	switch routing.Kind {
	case pack.RoutingNext:
		next, err := lookup(indexes.NodeIDs, TableNodeIDs, routing.Next.String())
		if err != nil {
			return encodedRouting{}, err
		}
		return encodedRouting{kind: pack.RoutingNext, next: next}, nil

	case pack.RoutingBranch:
		onStatus := make(map[string]uint32, len(routing.OnStatus))
		for status, target := range routing.OnStatus {
			index, err := lookup(indexes.NodeIDs, TableNodeIDs, target.String())
			if err != nil {
				return encodedRouting{}, err
			}
			onStatus[status] = index
		}
		encoded := encodedRouting{kind: pack.RoutingBranch, onStatus: onStatus}
		if !routing.Default.IsZero() {
			index, err := lookup(indexes.NodeIDs, TableNodeIDs, routing.Default.String())
			if err != nil {
				return encodedRouting{}, err
			}
			encoded.fallback = &index
		}
		return encoded, nil

	case pack.RoutingEnd, pack.RoutingReply:
		return encodedRouting{kind: routing.Kind}, nil

	case pack.RoutingCustom:
		if routing.Custom.IsZero() {
			return encodedRouting{}, &EncodeError{Err: fmt.Errorf("custom routing has no payload")}
		}
		return encodedRouting{kind: pack.RoutingCustom, custom: routing.Custom}, nil

	default:
		return encodedRouting{}, &EncodeError{Err: fmt.Errorf("unknown routing kind %q", routing.Kind)}
	}
}
