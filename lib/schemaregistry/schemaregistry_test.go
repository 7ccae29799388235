// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemaregistry

import (
	"strings"
	"testing"

	"golang.org/x/mod/semver"
)

func TestSchemasReturnsCopy(t *testing.T) {
	first := Schemas()
	first[0].ID = "mutated"
	first = append(first[:1], first[2:]...)

	second := Schemas()
	if len(second) != len(schemas) {
		t.Fatalf("Schemas() has %d entries after caller mutation, want %d", len(second), len(schemas))
	}
	if second[0].ID != "flowtypes.pack.describe@0.6.0" {
		t.Errorf("first entry = %q after caller mutation", second[0].ID)
	}
}

func TestSchemaIDsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, schema := range Schemas() {
		name, version, ok := strings.Cut(schema.ID, "@")
		if !ok || name == "" {
			t.Errorf("schema id %q is not <name>@<version>", schema.ID)
			continue
		}
		if !semver.IsValid("v" + version) {
			t.Errorf("schema id %q has invalid version %q", schema.ID, version)
		}
		if !strings.Contains(name, "."+string(schema.Kind)+".") {
			t.Errorf("schema id %q does not name its kind %q", schema.ID, schema.Kind)
		}
		if seen[schema.ID] {
			t.Errorf("duplicate schema id %q", schema.ID)
		}
		seen[schema.ID] = true
	}
}

func TestLookup(t *testing.T) {
	schema, ok := Lookup("flowtypes.component.qa@0.6.0")
	if !ok {
		t.Fatal("Lookup did not find component qa schema")
	}
	if schema.Kind != KindComponent || schema.Version != 6 {
		t.Errorf("Lookup = %+v", schema)
	}
	if _, ok := Lookup("flowtypes.component.qa@0.7.0"); ok {
		t.Error("Lookup found an unregistered version")
	}
}

func TestByKind(t *testing.T) {
	if got := len(ByKind(KindPack)); got != 3 {
		t.Errorf("ByKind(pack) returned %d schemas, want 3", got)
	}
	if got := len(ByKind(KindComponent)); got != 2 {
		t.Errorf("ByKind(component) returned %d schemas, want 2", got)
	}
	if got := ByKind("flow"); got != nil {
		t.Errorf("ByKind(flow) = %v, want nil", got)
	}
}
