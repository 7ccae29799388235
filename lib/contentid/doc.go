// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package contentid derives and parses content identifiers: stable,
// versioned names computed purely from canonical CBOR bytes.
//
// An identifier has the text form
//
//	<namespace>:v<version>:<payload>
//
// where payload is the restricted Crockford Base32 encoding (see
// [crockford]) of the first 16 bytes of the BLAKE3 hash of the
// canonical document. The namespace separates call sites (schema
// identifiers, locale identifiers, stored documents) while the
// derivation rules stay identical across all of them.
//
// Identifiers carry no randomness, clock, or counter. Two documents
// that differ only in map key order derive the same identifier because
// [Derive] canonicalizes before hashing. Identifiers are compared by
// string equality; [Parse] validates format only and cannot re-verify
// the hash without the original payload.
package contentid
