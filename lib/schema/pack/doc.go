// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pack defines the pack manifest: the document that describes
// a deployable pack's components, flows, dependencies, and declared
// capabilities.
//
// A [Manifest] owns its components, flow entries, dependencies, and
// capabilities. Each flow owns an ordered list of nodes; a node names
// the component that executes it and a [Routing] decision that may
// point at other nodes of the same flow.
//
// The types carry json tags for authoring and inspection. Opaque
// documents (input and output mappings, schemas, telemetry hints,
// custom routing payloads) are held as [canonical.Value] trees so they
// survive the canonical CBOR transcoder in lib/packcodec unchanged.
// A nil document pointer means the document is absent; an explicit
// null document is treated the same way.
//
// [Manifest.Validate] checks structure the transcoder does not: enum
// values, semantic versions, uniqueness of identifiers, and that every
// routing target names a node of the same flow.
package pack
