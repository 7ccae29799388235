// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package packcodec

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/codec"
	"github.com/bureau-foundation/flowtypes/lib/ref"
	"github.com/bureau-foundation/flowtypes/lib/schema/pack"
)

const sampleManifestJSON = `{
	"schema_version": "pack-v1",
	"pack_id": "acme.support",
	"name": "Support desk",
	"version": "1.2.0",
	"kind": "application",
	"publisher": "acme",
	"components": [{
		"id": "acme.classifier",
		"version": "0.3.1",
		"supports": ["messaging"],
		"world": "acme:component/node",
		"profiles": {"default": "fast", "supported": ["fast", "accurate"]},
		"capabilities": {"http": {"outbound": true}},
		"operations": [{"name": "classify", "input_schema": {"type": "object"}}],
		"resources": {"cpu_millis": 250, "memory_mb": 128}
	}],
	"flows": [{
		"id": "triage",
		"kind": "messaging",
		"tags": ["support"],
		"entrypoints": ["default"],
		"flow": {
			"schema_version": "flow-v1",
			"id": "triage",
			"kind": "messaging",
			"entrypoints": {"default": {"channel": "email"}},
			"nodes": [
				{"id": "classify", "component": {"id": "acme.classifier", "operation": "classify"},
				 "input": {"text": "$.body"},
				 "routing": {"branch": {"on_status": {"urgent": "escalate", "ok": "answer"}, "default": "answer"}}},
				{"id": "answer", "component": {"id": "acme.classifier"}, "routing": "reply"},
				{"id": "escalate", "component": {"id": "pager", "pack_alias": "ops"},
				 "routing": {"custom": {"mode": "fanout", "targets": [1, 2]}}},
				{"id": "forward", "component": {"id": "acme.classifier"}, "routing": {"next": {"node_id": "answer"}}},
				{"id": "wrapup", "component": {"id": "acme.classifier"}, "routing": "end"}
			]
		}
	}],
	"dependencies": [{"alias": "ops", "pack_id": "acme.ops", "version_req": "^2.1", "required_capabilities": ["page"]}],
	"capabilities": [{"name": "support.answer", "description": "answers tickets"}],
	"secret_requirements": [{"key": "SMTP_PASSWORD", "required": true}],
	"signatures": {"signatures": [{"key_id": "k1", "algorithm": "ed25519", "signature": "AAEC"}]},
	"bootstrap": {"install_flow": "triage"},
	"extensions": {"acme.theme": {"kind": "acme.theme", "version": "1", "inline": {"color": "teal"}}}
}`

func sampleManifest(t *testing.T) *pack.Manifest {
	t.Helper()
	var manifest pack.Manifest
	if err := json.Unmarshal([]byte(sampleManifestJSON), &manifest); err != nil {
		t.Fatalf("Unmarshal sample manifest: %v", err)
	}
	if err := manifest.Validate(); err != nil {
		t.Fatalf("sample manifest invalid: %v", err)
	}
	return &manifest
}

// manifestOptions compares manifests by identifier text and treats
// nil and empty collections alike.
var manifestOptions = cmp.Options{
	cmp.Comparer(func(a, b ref.PackID) bool { return a == b }),
	cmp.Comparer(func(a, b ref.ComponentID) bool { return a == b }),
	cmp.Comparer(func(a, b ref.FlowID) bool { return a == b }),
	cmp.Comparer(func(a, b ref.NodeID) bool { return a == b }),
	cmpopts.EquateEmpty(),
}

func TestRoundTrip(t *testing.T) {
	manifest := sampleManifest(t)

	data, err := Encode(manifest)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(manifest, decoded, manifestOptions); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	nodes := decoded.Flows[0].Flow.Nodes
	if forward := nodes[3].Routing; forward.Kind != pack.RoutingNext || forward.Next.String() != "answer" {
		t.Errorf("forward routing = %+v, want next to answer", forward)
	}
	if wrapup := nodes[4].Routing; wrapup.Kind != pack.RoutingEnd {
		t.Errorf("wrapup routing = %+v, want end", wrapup)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	first, err := Encode(sampleManifest(t))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for range 10 {
		again, err := Encode(sampleManifest(t))
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("encoding the same manifest produced different bytes")
		}
	}
	if err := canonical.EnsureCanonical(first); err != nil {
		t.Errorf("encoded manifest is not canonical: %v", err)
	}
}

func TestSymbolTables(t *testing.T) {
	data, err := Encode(sampleManifest(t))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tables, err := Tables(data)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}

	want := SymbolTables{
		ComponentIDs:    []string{"pager", "acme.classifier"},
		NodeIDs:         []string{"answer", "classify", "escalate", "forward", "wrapup"},
		CapabilityNames: []string{"page", "support.answer"},
		PackIDs:         []string{"acme.ops", "acme.support"},
	}
	slices.Sort(want.ComponentIDs)
	if diff := cmp.Diff(want, tables); diff != "" {
		t.Errorf("symbol tables mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSymbolsDeduplicates(t *testing.T) {
	manifest := sampleManifest(t)
	manifest.Capabilities = append(manifest.Capabilities, pack.Capability{Name: "page"})

	tables, indexes := BuildSymbols(manifest)
	if len(tables.CapabilityNames) != 2 {
		t.Fatalf("CapabilityNames = %v, want two distinct entries", tables.CapabilityNames)
	}
	for i, name := range tables.CapabilityNames {
		if indexes.CapabilityNames[name] != uint32(i) {
			t.Errorf("index of %q = %d, want %d", name, indexes.CapabilityNames[name], i)
		}
	}
	if !slices.IsSorted(tables.NodeIDs) || !slices.IsSorted(tables.ComponentIDs) || !slices.IsSorted(tables.PackIDs) {
		t.Errorf("tables not sorted: %+v", tables)
	}
}

func TestWireShape(t *testing.T) {
	data, err := Encode(sampleManifest(t))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var document map[string]any
	if err := codec.Unmarshal(data, &document); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	// acme.support sorts after acme.ops.
	if index, ok := document["pack_id"].(uint64); !ok || index != 1 {
		t.Errorf("pack_id = %#v, want symbol index 1", document["pack_id"])
	}

	flows := document["flows"].([]any)
	nodes := flows[0].(map[string]any)["flow"].(map[string]any)["nodes"].([]any)
	answer := nodes[1].(map[string]any)
	if answer["id"] != uint64(0) {
		t.Errorf("answer node id = %#v, want index 0", answer["id"])
	}
	if answer["routing"] != "Reply" {
		t.Errorf("answer routing = %#v, want \"Reply\"", answer["routing"])
	}
	branch, ok := nodes[0].(map[string]any)["routing"].(map[string]any)["Branch"].(map[string]any)
	if !ok {
		t.Fatalf("classify routing = %#v, want Branch variant", nodes[0].(map[string]any)["routing"])
	}
	if branch["default"] != uint64(0) {
		t.Errorf("branch default = %#v, want index 0", branch["default"])
	}
	next, ok := nodes[3].(map[string]any)["routing"].(map[string]any)["Next"].(map[string]any)
	if !ok || next["node_id"] != uint64(0) {
		t.Errorf("forward routing = %#v, want Next to index 0", nodes[3].(map[string]any)["routing"])
	}
	if wrapup := nodes[4].(map[string]any)["routing"]; wrapup != "End" {
		t.Errorf("wrapup routing = %#v, want \"End\"", wrapup)
	}
}

// reencode encodes the manifest, lets mutate edit the wire form, and
// serializes the result.
func reencode(t *testing.T, mutate func(*encodedManifest)) []byte {
	t.Helper()
	encoded, err := toEncoded(sampleManifest(t))
	if err != nil {
		t.Fatalf("toEncoded: %v", err)
	}
	mutate(encoded)
	data, err := codec.Marshal(encoded)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

func TestDecodeLegacyPackID(t *testing.T) {
	data := reencode(t, func(encoded *encodedManifest) {
		encoded.PackID = legacyPackID("acme.support")
	})
	manifest, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if manifest.PackID != ref.MustParsePackID("acme.support") {
		t.Errorf("PackID = %s, want acme.support", manifest.PackID)
	}
}

func TestDecodeLegacyPackIDNotInTable(t *testing.T) {
	data := reencode(t, func(encoded *encodedManifest) {
		encoded.PackID = legacyPackID("acme.legacy")
	})
	manifest, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if manifest.PackID.String() != "acme.legacy" {
		t.Errorf("PackID = %s, want acme.legacy", manifest.PackID)
	}
}

func TestDecodeInvalidIndex(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*encodedManifest)
		table  Table
		index  uint64
	}{
		{"routing next", func(e *encodedManifest) {
			e.Flows[0].Flow.Nodes[1].Routing = encodedRouting{kind: pack.RoutingNext, next: 999}
		}, TableNodeIDs, 999},
		{"branch default", func(e *encodedManifest) {
			fallback := uint32(5)
			e.Flows[0].Flow.Nodes[0].Routing.fallback = &fallback
		}, TableNodeIDs, 5},
		{"node id", func(e *encodedManifest) { e.Flows[0].Flow.Nodes[2].ID = 7 }, TableNodeIDs, 7},
		{"node component", func(e *encodedManifest) { e.Flows[0].Flow.Nodes[0].Component.ID = 42 }, TableComponentIDs, 42},
		{"component id", func(e *encodedManifest) { e.Components[0].ID = 2 }, TableComponentIDs, 2},
		{"pack id", func(e *encodedManifest) { e.PackID = indexedPackID(5) }, TablePackIDs, 5},
		{"dependency pack id", func(e *encodedManifest) { e.Dependencies[0].PackID = 9 }, TablePackIDs, 9},
		{"required capability", func(e *encodedManifest) {
			e.Dependencies[0].RequiredCapabilities = []uint32{0, 12}
		}, TableCapabilityNames, 12},
		{"capability name", func(e *encodedManifest) { e.Capabilities[0].Name = 2 }, TableCapabilityNames, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(reencode(t, tt.mutate))
			var indexErr *InvalidIndexError
			if !errors.As(err, &indexErr) {
				t.Fatalf("Decode error = %v, want *InvalidIndexError", err)
			}
			if indexErr.Table != tt.table || indexErr.Index != tt.index {
				t.Errorf("InvalidIndexError = {%s %d}, want {%s %d}", indexErr.Table, indexErr.Index, tt.table, tt.index)
			}
		})
	}
}

func TestDecodeInvalidIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*encodedManifest)
		field  string
	}{
		{"node table entry", func(e *encodedManifest) { e.Symbols.NodeIDs[2] = "bad node" }, "node_ids"},
		{"unreferenced component entry", func(e *encodedManifest) {
			e.Symbols.ComponentIDs = append(e.Symbols.ComponentIDs, "not/valid")
		}, "component_ids"},
		{"pack table entry", func(e *encodedManifest) { e.Symbols.PackIDs[1] = "" }, "pack_id"},
		{"legacy pack id", func(e *encodedManifest) { e.PackID = legacyPackID("acme support") }, "pack_id"},
		{"flow id", func(e *encodedManifest) { e.Flows[0].ID = "tri age" }, "flow id"},
		{"version", func(e *encodedManifest) { e.Version = "one" }, "version"},
		{"version requirement", func(e *encodedManifest) { e.Dependencies[0].VersionReq = "~>banana" }, "version_req"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(reencode(t, tt.mutate))
			var identifierErr *InvalidIdentifierError
			if !errors.As(err, &identifierErr) {
				t.Fatalf("Decode error = %v, want *InvalidIdentifierError", err)
			}
			if identifierErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", identifierErr.Field, tt.field)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", []byte{0xA2, 0x61}},
		{"not a map", []byte{0x83, 0x01, 0x02, 0x03}},
		{"pack id of wrong type", reencodeRaw(t, "pack_id", true)},
		{"unknown routing variant", func() []byte {
			data := reencode(t, func(*encodedManifest) {})
			return bytes.Replace(data, []byte("Reply"), []byte("Reqly"), 1)
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("Decode error = %v, want *DecodeError", err)
			}
		})
	}
}

func TestDecodeMissingRequiredField(t *testing.T) {
	tests := []struct {
		name   string
		remove func(document map[string]any)
	}{
		{"pack id", func(document map[string]any) { delete(document, "pack_id") }},
		{"node routing", func(document map[string]any) {
			flow := document["flows"].([]any)[0].(map[string]any)["flow"].(map[string]any)
			delete(flow["nodes"].([]any)[0].(map[string]any), "routing")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var document map[string]any
			if err := codec.Unmarshal(reencode(t, func(*encodedManifest) {}), &document); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			tt.remove(document)
			data, err := codec.Marshal(document)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}

			manifest, err := Decode(data)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("Decode error = %v, want *DecodeError", err)
			}
			if manifest != nil {
				t.Errorf("Decode returned a manifest alongside the error: %+v", manifest)
			}
		})
	}
}

// reencodeRaw replaces one top-level field of the encoded sample with
// an arbitrary value.
func reencodeRaw(t *testing.T, field string, value any) []byte {
	t.Helper()
	var document map[string]any
	if err := codec.Unmarshal(reencode(t, func(*encodedManifest) {}), &document); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	document[field] = value
	data, err := codec.Marshal(document)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

func TestEncodeMissingIdentifier(t *testing.T) {
	manifest := sampleManifest(t)
	manifest.Flows[0].Flow.Nodes[1].Routing = pack.NextRouting(ref.MustParseNodeID("nowhere"))

	_, err := Encode(manifest)
	var indexErr *InvalidIndexError
	if !errors.As(err, &indexErr) {
		t.Fatalf("Encode error = %v, want *InvalidIndexError", err)
	}
	if indexErr.Table != TableNodeIDs || indexErr.Index != MissingIndex || indexErr.Identifier != "nowhere" {
		t.Errorf("InvalidIndexError = %+v", indexErr)
	}
}

func TestDecodeIgnoresUnreferencedEntries(t *testing.T) {
	data := reencode(t, func(e *encodedManifest) {
		e.Symbols.CapabilityNames = append(e.Symbols.CapabilityNames, "zzz.unused")
	})
	if _, err := Decode(data); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}
