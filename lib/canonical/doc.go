// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package canonical normalizes CBOR documents into their unique
// canonical byte form.
//
// A canonical document is the deterministic encoding of a constrained
// value tree: integers, byte strings, text strings, booleans, null,
// arrays, and maps whose keys are text strings. Floats, tags, and other
// simple values are rejected wherever they appear. Map entries are
// ordered by [CompareKeys] (shorter keys first, then bytewise), lengths
// are always definite, and integers use the shortest head.
//
// Two value trees that are structurally equal always canonicalize to
// the same bytes, so canonical bytes can be hashed into stable content
// identifiers (see lib/contentid). The key order is length-first, as in
// RFC 7049 §3.9, not the bytewise order of RFC 8949 §4.2.1. Canonical
// bytes are only ever compared with other output of this package, so
// the ordering is self-consistent, but tooling that expects Core
// Deterministic Encoding will disagree on documents whose keys differ
// in length.
//
// The main entry points:
//
//   - [Canonicalize]: arbitrary CBOR bytes in, canonical bytes out
//   - [EnsureCanonical]: fails with [ErrNotCanonical] unless the input
//     already is its own canonical form
//   - [ToCanonical]: encode any Go value and canonicalize the result
//   - [Decode]: parse bytes into a [Value] tree for inspection
//
// Errors fall into two families. [*DecodeError] and [*EncodeError]
// mean the bytes are not CBOR at all (or could not be produced).
// Everything else wraps [ErrNotCanonical]: the input is valid CBOR that
// breaks a canonical rule. Callers can branch on the family with
// errors.Is(err, ErrNotCanonical) and on the specific rule with
// [ErrFloatNotAllowed], [ErrTagNotAllowed], [ErrNonStringMapKey], or
// [ErrSimpleValueNotAllowed].
package canonical
