// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides strongly typed, immutable identifiers for the
// entities a pack manifest names: packs, components, flows, and flow
// nodes.
//
// Every identifier is a validated value type. Constructors reject
// empty strings and any character outside ASCII letters, digits, '.',
// '_' and '-'. Once constructed, an identifier is immutable and its
// zero value is distinguishable with IsZero.
//
// Identifiers serialize as their plain string through
// encoding.TextMarshaler, so they appear as text strings in both JSON
// and CBOR. Unmarshaling validates, and empty input produces the zero
// value.
package ref
