// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package packcodec transcodes pack manifests to and from their
// compact canonical CBOR form.
//
// Encoding scans the manifest once and builds four symbol tables:
// component IDs, node IDs, capability names, and pack IDs. Each table
// is deduplicated and sorted ascending, and an identifier's position
// in its table is its index. The encoded document replaces every
// component ID, node ID, capability name, and dependency pack ID with
// its index, and embeds the tables under "symbols". Routing targets
// (next, branch targets, branch default) are node indices as well.
//
// The manifest's own pack_id is written as an index. For documents
// produced before the symbol tables existed, decoding also accepts a
// text string in that field and uses it as the literal pack ID.
//
// Encoding is deterministic: the tables depend only on the manifest's
// content, and the document is written in canonical key order, so
// [Encode] output always passes canonical.EnsureCanonical. Decoding
// resolves every index against its table and parses the result into
// its typed identifier; nothing is recovered silently. Failures are
// [*InvalidIndexError], [*InvalidIdentifierError], [*DecodeError], or
// [*EncodeError].
package packcodec
