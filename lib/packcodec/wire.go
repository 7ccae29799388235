// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package packcodec

import (
	"errors"
	"fmt"
	"math"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/codec"
	"github.com/bureau-foundation/flowtypes/lib/schema/pack"
)

// The encoded shape parallels pack.Manifest with identifiers replaced
// by symbol indices. Field names are part of the wire format.

type encodedManifest struct {
	SchemaVersion      string                       `cbor:"schema_version"`
	PackID             packIDRef                    `cbor:"pack_id"`
	Name               string                       `cbor:"name,omitempty"`
	Version            string                       `cbor:"version"`
	Kind               pack.PackKind                `cbor:"kind"`
	Publisher          string                       `cbor:"publisher"`
	Symbols            SymbolTables                 `cbor:"symbols"`
	Components         []encodedComponent           `cbor:"components"`
	Flows              []encodedFlowEntry           `cbor:"flows"`
	Dependencies       []encodedDependency          `cbor:"dependencies"`
	Capabilities       []encodedCapability          `cbor:"capabilities"`
	SecretRequirements []pack.SecretRequirement     `cbor:"secret_requirements,omitempty"`
	Signatures         pack.Signatures              `cbor:"signatures"`
	Bootstrap          *pack.BootstrapSpec          `cbor:"bootstrap,omitempty"`
	Extensions         map[string]pack.ExtensionRef `cbor:"extensions,omitempty"`
}

type encodedComponent struct {
	ID            uint32                  `cbor:"id"`
	Version       string                  `cbor:"version"`
	Supports      []pack.FlowKind         `cbor:"supports"`
	World         string                  `cbor:"world"`
	Profiles      pack.Profiles           `cbor:"profiles"`
	Capabilities  *canonical.Value        `cbor:"capabilities,omitempty"`
	Configurators *pack.Configurators     `cbor:"configurators,omitempty"`
	Operations    []pack.Operation        `cbor:"operations"`
	ConfigSchema  *canonical.Value        `cbor:"config_schema,omitempty"`
	Resources     pack.ResourceHints      `cbor:"resources"`
	DevFlows      map[string]pack.DevFlow `cbor:"dev_flows,omitempty"`
}

type encodedFlowEntry struct {
	ID          string        `cbor:"id"`
	Kind        pack.FlowKind `cbor:"kind"`
	Flow        encodedFlow   `cbor:"flow"`
	Tags        []string      `cbor:"tags"`
	Entrypoints []string      `cbor:"entrypoints"`
}

type encodedFlow struct {
	SchemaVersion string                     `cbor:"schema_version"`
	ID            string                     `cbor:"id"`
	Kind          pack.FlowKind              `cbor:"kind"`
	Entrypoints   map[string]canonical.Value `cbor:"entrypoints"`
	Nodes         []encodedNode              `cbor:"nodes"`
	Metadata      *canonical.Value           `cbor:"metadata,omitempty"`
}

type encodedNode struct {
	ID        uint32              `cbor:"id"`
	Component encodedComponentRef `cbor:"component"`
	Input     *canonical.Value    `cbor:"input,omitempty"`
	Output    *canonical.Value    `cbor:"output,omitempty"`
	Routing   encodedRouting      `cbor:"routing"`
	Telemetry *canonical.Value    `cbor:"telemetry,omitempty"`
}

type encodedComponentRef struct {
	ID        uint32 `cbor:"id"`
	PackAlias string `cbor:"pack_alias,omitempty"`
	Operation string `cbor:"operation,omitempty"`
}

type encodedDependency struct {
	Alias                string   `cbor:"alias"`
	PackID               uint32   `cbor:"pack_id"`
	VersionReq           string   `cbor:"version_req"`
	RequiredCapabilities []uint32 `cbor:"required_capabilities"`
}

type encodedCapability struct {
	Name        uint32 `cbor:"name"`
	Description string `cbor:"description,omitempty"`
}

// packIDRef is the manifest's own pack_id on the wire: a symbol index
// in current documents, a literal pack ID string in legacy ones. The
// CBOR major type picks the variant. The zero value is an absent
// pack_id, which decoding rejects.
type packIDRef struct {
	index  uint32
	legacy string

	isLegacy bool
	present  bool
}

func indexedPackID(index uint32) packIDRef { return packIDRef{index: index, present: true} }

func legacyPackID(id string) packIDRef {
	return packIDRef{legacy: id, isLegacy: true, present: true}
}

func (p packIDRef) MarshalCBOR() ([]byte, error) {
	if p.isLegacy {
		return codec.Marshal(p.legacy)
	}
	return codec.Marshal(p.index)
}

func (p *packIDRef) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return errors.New("pack_id: empty item")
	}
	switch data[0] >> 5 {
	case 0: // unsigned integer
		var index uint64
		if err := codec.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("pack_id: %w", err)
		}
		if index > math.MaxUint32 {
			return fmt.Errorf("pack_id: index %d exceeds the 32-bit index range", index)
		}
		*p = indexedPackID(uint32(index))
	case 3: // text string
		var legacy string
		if err := codec.Unmarshal(data, &legacy); err != nil {
			return fmt.Errorf("pack_id: %w", err)
		}
		*p = legacyPackID(legacy)
	default:
		return fmt.Errorf("pack_id must be an unsigned index or a text string, got CBOR major type %d", data[0]>>5)
	}
	return nil
}

// Wire names of the routing variants. Unit variants are bare text
// strings; the others are single-key maps keyed by these names.
const (
	wireNext   = "Next"
	wireBranch = "Branch"
	wireEnd    = "End"
	wireReply  = "Reply"
	wireCustom = "Custom"
)

// encodedRouting is pack.Routing with node targets as indices.
type encodedRouting struct {
	kind     pack.RoutingKind
	next     uint32
	onStatus map[string]uint32
	fallback *uint32
	custom   canonical.Value
}

type encodedNext struct {
	NodeID uint32 `cbor:"node_id"`
}

type encodedBranch struct {
	OnStatus map[string]uint32 `cbor:"on_status"`
	Default  *uint32           `cbor:"default,omitempty"`
}

func (r encodedRouting) MarshalCBOR() ([]byte, error) {
	switch r.kind {
	case pack.RoutingNext:
		return codec.Marshal(map[string]encodedNext{wireNext: {NodeID: r.next}})
	case pack.RoutingBranch:
		onStatus := r.onStatus
		if onStatus == nil {
			onStatus = map[string]uint32{}
		}
		return codec.Marshal(map[string]encodedBranch{wireBranch: {OnStatus: onStatus, Default: r.fallback}})
	case pack.RoutingEnd:
		return codec.Marshal(wireEnd)
	case pack.RoutingReply:
		return codec.Marshal(wireReply)
	case pack.RoutingCustom:
		return codec.Marshal(map[string]canonical.Value{wireCustom: r.custom})
	default:
		return nil, fmt.Errorf("routing: unknown kind %q", r.kind)
	}
}

func (r *encodedRouting) UnmarshalCBOR(data []byte) error {
	var unit string
	if err := codec.Unmarshal(data, &unit); err == nil {
		switch unit {
		case wireEnd:
			*r = encodedRouting{kind: pack.RoutingEnd}
		case wireReply:
			*r = encodedRouting{kind: pack.RoutingReply}
		default:
			return fmt.Errorf("routing: unknown unit variant %q", unit)
		}
		return nil
	}

	var variants map[string]codec.RawMessage
	if err := codec.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("routing must be a text string or a single-key map: %w", err)
	}
	if len(variants) != 1 {
		return fmt.Errorf("routing must have exactly one variant, got %d", len(variants))
	}
	for name, body := range variants {
		switch name {
		case wireNext:
			var next encodedNext
			if err := codec.Unmarshal(body, &next); err != nil {
				return fmt.Errorf("routing %s: %w", name, err)
			}
			*r = encodedRouting{kind: pack.RoutingNext, next: next.NodeID}
		case wireBranch:
			var branch encodedBranch
			if err := codec.Unmarshal(body, &branch); err != nil {
				return fmt.Errorf("routing %s: %w", name, err)
			}
			*r = encodedRouting{kind: pack.RoutingBranch, onStatus: branch.OnStatus, fallback: branch.Default}
		case wireCustom:
			var custom canonical.Value
			if err := codec.Unmarshal(body, &custom); err != nil {
				return fmt.Errorf("routing %s: %w", name, err)
			}
			*r = encodedRouting{kind: pack.RoutingCustom, custom: custom}
		default:
			return fmt.Errorf("routing: unknown variant %q", name)
		}
	}
	return nil
}
