// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package docstore keeps canonical CBOR documents on disk addressed by
// their content identifiers.
//
// Each document lives in one file under
// <root>/<namespace>/v<version>/<shard>/<payload>, where shard is the
// first two characters of the identifier payload. A file starts with
// a one-byte [CompressionTag] and the uvarint-encoded uncompressed
// length, followed by the (possibly compressed) document bytes.
//
// Writes go to a temporary file in the store root and are renamed
// into place, so readers never observe partial documents and
// concurrent writers of the same document race harmlessly. Reads
// recompute the identifier from the decompressed bytes and reject
// files whose content no longer matches their name.
package docstore
