// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package packcodec

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/flowtypes/lib/codec"
	"github.com/bureau-foundation/flowtypes/lib/ref"
	"github.com/bureau-foundation/flowtypes/lib/schema/pack"
)

// Decode reads a manifest written by [Encode], or by older tooling
// that stored the manifest's pack_id as a string. Every index must
// resolve and every resolved identifier must parse; the first failure
// is returned and no partial manifest is produced.
func Decode(data []byte) (*pack.Manifest, error) {
	var encoded encodedManifest
	if err := codec.Unmarshal(data, &encoded); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return fromEncoded(&encoded)
}

// Tables returns the symbol tables embedded in an encoded manifest
// without resolving the rest of the document.
func Tables(data []byte) (SymbolTables, error) {
	var envelope struct {
		Symbols SymbolTables `cbor:"symbols"`
	}
	if err := codec.Unmarshal(data, &envelope); err != nil {
		return SymbolTables{}, &DecodeError{Err: err}
	}
	return envelope.Symbols, nil
}

// symbols holds the tables parsed into typed identifiers. Component
// and node tables are parsed up front, so a malformed entry fails the
// decode even when nothing refers to it.
type symbols struct {
	componentIDs    []ref.ComponentID
	nodeIDs         []ref.NodeID
	capabilityNames []string
	packIDs         []string
}

func parseSymbols(tables SymbolTables) (*symbols, error) {
	parsed := &symbols{
		componentIDs:    make([]ref.ComponentID, 0, len(tables.ComponentIDs)),
		nodeIDs:         make([]ref.NodeID, 0, len(tables.NodeIDs)),
		capabilityNames: tables.CapabilityNames,
		packIDs:         tables.PackIDs,
	}
	for _, raw := range tables.ComponentIDs {
		id, err := ref.ParseComponentID(raw)
		if err != nil {
			return nil, &InvalidIdentifierError{Field: string(TableComponentIDs), Value: raw, Err: err}
		}
		parsed.componentIDs = append(parsed.componentIDs, id)
	}
	for _, raw := range tables.NodeIDs {
		id, err := ref.ParseNodeID(raw)
		if err != nil {
			return nil, &InvalidIdentifierError{Field: string(TableNodeIDs), Value: raw, Err: err}
		}
		parsed.nodeIDs = append(parsed.nodeIDs, id)
	}
	return parsed, nil
}

func (s *symbols) component(index uint32) (ref.ComponentID, error) {
	if uint64(index) >= uint64(len(s.componentIDs)) {
		return ref.ComponentID{}, &InvalidIndexError{Table: TableComponentIDs, Index: uint64(index)}
	}
	return s.componentIDs[index], nil
}

func (s *symbols) node(index uint32) (ref.NodeID, error) {
	if uint64(index) >= uint64(len(s.nodeIDs)) {
		return ref.NodeID{}, &InvalidIndexError{Table: TableNodeIDs, Index: uint64(index)}
	}
	return s.nodeIDs[index], nil
}

func (s *symbols) pack(index uint32) (ref.PackID, error) {
	raw, err := resolve(s.packIDs, TablePackIDs, index)
	if err != nil {
		return ref.PackID{}, err
	}
	return parsePackID(raw)
}

func parsePackID(raw string) (ref.PackID, error) {
	id, err := ref.ParsePackID(raw)
	if err != nil {
		return ref.PackID{}, &InvalidIdentifierError{Field: "pack_id", Value: raw, Err: err}
	}
	return id, nil
}

func fromEncoded(encoded *encodedManifest) (*pack.Manifest, error) {
	if !encoded.PackID.present {
		return nil, &DecodeError{Err: errors.New("pack_id is missing")}
	}
	var packID ref.PackID
	var err error
	if encoded.PackID.isLegacy {
		packID, err = parsePackID(encoded.PackID.legacy)
	} else {
		var raw string
		raw, err = resolve(encoded.Symbols.PackIDs, TablePackIDs, encoded.PackID.index)
		if err == nil {
			packID, err = parsePackID(raw)
		}
	}
	if err != nil {
		return nil, err
	}

	table, err := parseSymbols(encoded.Symbols)
	if err != nil {
		return nil, err
	}

	if err := pack.ValidateVersion(encoded.Version); err != nil {
		return nil, &InvalidIdentifierError{Field: "version", Value: encoded.Version, Err: err}
	}

	manifest := &pack.Manifest{
		SchemaVersion:      encoded.SchemaVersion,
		PackID:             packID,
		Name:               encoded.Name,
		Version:            encoded.Version,
		Kind:               encoded.Kind,
		Publisher:          encoded.Publisher,
		SecretRequirements: encoded.SecretRequirements,
		Signatures:         encoded.Signatures,
		Bootstrap:          encoded.Bootstrap,
		Extensions:         encoded.Extensions,
	}

	for i := range encoded.Components {
		component := &encoded.Components[i]
		id, err := table.component(component.ID)
		if err != nil {
			return nil, err
		}
		if err := pack.ValidateVersion(component.Version); err != nil {
			return nil, &InvalidIdentifierError{Field: "component version", Value: component.Version, Err: err}
		}
		manifest.Components = append(manifest.Components, pack.Component{
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

	for i := range encoded.Flows {
		entry := &encoded.Flows[i]
		flowID, err := ref.ParseFlowID(entry.ID)
		if err != nil {
			return nil, &InvalidIdentifierError{Field: "flow id", Value: entry.ID, Err: err}
		}
		flow, err := decodeFlow(&entry.Flow, table)
		if err != nil {
			return nil, err
		}
		manifest.Flows = append(manifest.Flows, pack.FlowEntry{
			ID:          flowID,
			Kind:        entry.Kind,
			Flow:        flow,
			Tags:        entry.Tags,
			Entrypoints: entry.Entrypoints,
		})
	}

	for i := range encoded.Dependencies {
		dependency := &encoded.Dependencies[i]
		packID, err := table.pack(dependency.PackID)
		if err != nil {
			return nil, err
		}
		if err := pack.ValidateVersionReq(dependency.VersionReq); err != nil {
			return nil, &InvalidIdentifierError{Field: "version_req", Value: dependency.VersionReq, Err: err}
		}
		var required []string
		if dependency.RequiredCapabilities != nil {
			required = make([]string, 0, len(dependency.RequiredCapabilities))
		}
		for _, index := range dependency.RequiredCapabilities {
			name, err := resolve(table.capabilityNames, TableCapabilityNames, index)
			if err != nil {
				return nil, err
			}
			required = append(required, name)
		}
		manifest.Dependencies = append(manifest.Dependencies, pack.Dependency{
			Alias:                dependency.Alias,
			PackID:               packID,
			VersionReq:           dependency.VersionReq,
			RequiredCapabilities: required,
		})
	}

	for _, capability := range encoded.Capabilities {
		name, err := resolve(table.capabilityNames, TableCapabilityNames, capability.Name)
		if err != nil {
			return nil, err
		}
		manifest.Capabilities = append(manifest.Capabilities, pack.Capability{
			Name:        name,
			Description: capability.Description,
		})
	}

	return manifest, nil
}

func decodeFlow(encoded *encodedFlow, table *symbols) (pack.Flow, error) {
	id, err := ref.ParseFlowID(encoded.ID)
	if err != nil {
		return pack.Flow{}, &InvalidIdentifierError{Field: "flow id", Value: encoded.ID, Err: err}
	}
	flow := pack.Flow{
		SchemaVersion: encoded.SchemaVersion,
		ID:            id,
		Kind:          encoded.Kind,
		Entrypoints:   encoded.Entrypoints,
		Metadata:      encoded.Metadata,
	}

	for i := range encoded.Nodes {
		node := &encoded.Nodes[i]
		nodeID, err := table.node(node.ID)
		if err != nil {
			return pack.Flow{}, err
		}
		componentID, err := table.component(node.Component.ID)
		if err != nil {
			return pack.Flow{}, err
		}
		routing, err := decodeRouting(node.Routing, table)
		if err != nil {
			return pack.Flow{}, err
		}
		flow.Nodes = append(flow.Nodes, pack.Node{
			ID: nodeID,
			Component: pack.ComponentRef{
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
	return flow, nil
}

func decodeRouting(encoded encodedRouting, table *symbols) (pack.Routing, error) {
	switch encoded.kind {
	case pack.RoutingNext:
		next, err := table.node(encoded.next)
		if err != nil {
			return pack.Routing{}, err
		}
		return pack.NextRouting(next), nil

	case pack.RoutingBranch:
		var onStatus map[string]ref.NodeID
		if encoded.onStatus != nil {
			onStatus = make(map[string]ref.NodeID, len(encoded.onStatus))
		}
		for status, index := range encoded.onStatus {
			target, err := table.node(index)
			if err != nil {
				return pack.Routing{}, err
			}
			onStatus[status] = target
		}
		var fallback ref.NodeID
		if encoded.fallback != nil {
			var err error
			fallback, err = table.node(*encoded.fallback)
			if err != nil {
				return pack.Routing{}, err
			}
		}
		return pack.BranchRouting(onStatus, fallback), nil

	case pack.RoutingCustom:
		return pack.CustomRouting(encoded.custom), nil

	case pack.RoutingEnd:
		return pack.EndRouting(), nil

	case pack.RoutingReply:
		return pack.ReplyRouting(), nil

	case "":
		return pack.Routing{}, &DecodeError{Err: errors.New("node routing is missing")}

	default:
		return pack.Routing{}, &DecodeError{Err: fmt.Errorf("unknown routing kind %q", encoded.kind)}
	}
}
