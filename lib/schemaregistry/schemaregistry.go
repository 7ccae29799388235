// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemaregistry lists the canonical CBOR document schemas this
// module knows how to produce. The table is fixed at compile time;
// callers receive copies and cannot change it.
package schemaregistry

import "slices"

// Kind is the entity a schema describes.
type Kind string

const (
	KindPack      Kind = "pack"
	KindComponent Kind = "component"
)

// Schema is one registered schema. ID is "<name>@<semver>"; Version is
// the schema generation and moves only when the wire shape changes.
type Schema struct {
	ID      string
	Version uint32
	Kind    Kind
}

// Entries are kept in semver order. Identifiers are stable once
// published.
var schemas = [...]Schema{
	{ID: "flowtypes.pack.describe@0.6.0", Version: 6, Kind: KindPack},
	{ID: "flowtypes.pack.qa@0.6.0", Version: 6, Kind: KindPack},
	{ID: "flowtypes.pack.validation@0.6.0", Version: 6, Kind: KindPack},
	{ID: "flowtypes.component.describe@0.6.0", Version: 6, Kind: KindComponent},
	{ID: "flowtypes.component.qa@0.6.0", Version: 6, Kind: KindComponent},
}

// Schemas returns a copy of the registration table.
func Schemas() []Schema {
	return slices.Clone(schemas[:])
}

// Lookup returns the schema registered under id.
func Lookup(id string) (Schema, bool) {
	for _, schema := range schemas {
		if schema.ID == id {
			return schema, true
		}
	}
	return Schema{}, false
}

// ByKind returns the schemas describing kind, in table order.
func ByKind(kind Kind) []Schema {
	var matched []Schema
	for _, schema := range schemas {
		if schema.Kind == kind {
			matched = append(matched, schema)
		}
	}
	return matched
}
