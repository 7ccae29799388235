// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package i18n normalizes locale tags and derives their content
// identifiers.
//
// Tags are parsed as BCP 47 (including -u- extensions) and rendered in
// canonical casing, so "en-gb" and "EN-GB" are the same [Tag]. The
// identifier of a tag is the "i18n:v1:" content identifier of the
// canonical CBOR encoding of its text.
package i18n
