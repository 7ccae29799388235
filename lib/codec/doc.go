// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the shared CBOR encoding configuration for
// flowtypes documents.
//
// Every binary document produced by this module (pack manifests,
// schema documents, identifier payloads) goes through the encoder in
// this package so that the same logical data always produces the same
// bytes. The encoder uses the length-first canonical ordering from
// RFC 7049 §3.9: map keys and struct fields are sorted by encoded
// length, then bytewise. This differs from the RFC 8949 §4.2.1 Core
// Deterministic ordering (bytewise only). Content identifiers are
// hashes of these bytes, so the ordering must never change.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR (the
//     compact wire shapes in lib/packcodec).
//   - `json` tag: the type may be serialized as both JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor` tags
//     are absent, so one tag controls field naming for both formats
//     (the manifest entity types in lib/schema/pack).
//
// Never use both `cbor` and `json` tags on the same field.
package codec
