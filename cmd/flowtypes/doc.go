// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Flowtypes is the command-line front end to the canonical CBOR,
// content identifier, and pack manifest libraries. It normalizes and
// inspects CBOR documents (cbor), derives and parses identifiers (id,
// i18n), converts pack manifests (manifest), lists the built-in
// schemas (schemas), and keeps a local content-addressed document
// store (store).
package main
