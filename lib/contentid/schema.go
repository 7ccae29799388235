// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contentid

// SchemaIDForCBOR derives the "schema:v1:" identifier of a schema
// document. Schema bytes are published as-is, so they must already be
// canonical; non-canonical input fails rather than being rewritten.
func SchemaIDForCBOR(schema []byte) (ID, error) {
	return DeriveStrict(schema, SchemaPrefix)
}

// ParseSchemaID parses a "schema:v1:" identifier.
func ParseSchemaID(text string) (ID, error) {
	return Parse(text, SchemaPrefix)
}
