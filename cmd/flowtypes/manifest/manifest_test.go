// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/schema/pack"
)

const sourceJSONC = `{
	// minimal two-node pack
	"schema_version": "pack-v1",
	"pack_id": "acme.echo",
	"version": "1.0.0",
	"kind": "application",
	"publisher": "acme",
	"components": [{
		"id": "acme.echo.reply",
		"version": "1.0.0",
		"supports": ["messaging"],
		"world": "acme:component/node",
		"profiles": {"default": "std", "supported": ["std"]},
		"operations": [{"name": "reply"}],
		"resources": {},
	}],
	"flows": [{
		"id": "echo",
		"kind": "messaging",
		"tags": [],
		"entrypoints": ["default"],
		"flow": {
			"schema_version": "flow-v1",
			"id": "echo",
			"kind": "messaging",
			"entrypoints": {"default": {"channel": "echo"}},
			"nodes": [
				{"id": "in", "component": {"id": "acme.echo.reply"}, "routing": {"next": {"node_id": "out"}}},
				{"id": "out", "component": {"id": "acme.echo.reply", "operation": "reply"}, "routing": "reply"},
			],
		},
	}],
	"dependencies": [],
	"capabilities": [],
	"signatures": {"signatures": []},
}`

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestEncodeDecodeManifest(t *testing.T) {
	var encoded bytes.Buffer
	if err := encodeManifest([]byte(sourceJSONC), &encodeParams{}, &encoded, discardLogger()); err != nil {
		t.Fatalf("encodeManifest: %v", err)
	}
	if err := canonical.EnsureCanonical(encoded.Bytes()); err != nil {
		t.Errorf("encoded manifest not canonical: %v", err)
	}

	var decoded bytes.Buffer
	if err := decodeManifest(encoded.Bytes(), &decoded); err != nil {
		t.Fatalf("decodeManifest: %v", err)
	}
	var manifest pack.Manifest
	if err := json.Unmarshal(decoded.Bytes(), &manifest); err != nil {
		t.Fatalf("decoded JSON does not parse as a manifest: %v\n%s", err, decoded.String())
	}
	if manifest.PackID.String() != "acme.echo" {
		t.Errorf("PackID = %s", manifest.PackID)
	}
	nodes := manifest.Flows[0].Flow.Nodes
	if len(nodes) != 2 || nodes[0].Routing.Kind != pack.RoutingNext || nodes[0].Routing.Next.String() != "out" {
		t.Errorf("nodes = %+v", nodes)
	}
}

func TestEncodeManifestHex(t *testing.T) {
	var first, second bytes.Buffer
	for _, output := range []*bytes.Buffer{&first, &second} {
		if err := encodeManifest([]byte(sourceJSONC), &encodeParams{HexOutput: true}, output, discardLogger()); err != nil {
			t.Fatalf("encodeManifest: %v", err)
		}
	}
	if first.String() != second.String() {
		t.Error("repeated encoding differs")
	}
	if !strings.HasSuffix(first.String(), "\n") {
		t.Error("hex output missing trailing newline")
	}
}

func TestEncodeManifestValidates(t *testing.T) {
	dangling := strings.Replace(sourceJSONC, `"node_id": "out"`, `"node_id": "nowhere"`, 1)
	var output bytes.Buffer

	err := encodeManifest([]byte(dangling), &encodeParams{}, &output, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "routing target") {
		t.Errorf("encodeManifest error = %v, want routing target validation error", err)
	}

	// Skipping validation leaves the dangling target to the encoder,
	// which cannot index it.
	err = encodeManifest([]byte(dangling), &encodeParams{NoValidate: true}, &output, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "nowhere") {
		t.Errorf("encodeManifest --no-validate error = %v, want missing identifier", err)
	}
}
