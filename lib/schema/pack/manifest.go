// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/ref"
)

// ManifestSchemaVersion is the schema version written by current
// tooling.
const ManifestSchemaVersion = "pack-v1"

// Manifest describes a pack: the components it bundles, the flows
// wired from them, the packs it depends on, and the capabilities it
// declares.
type Manifest struct {
	// SchemaVersion identifies the manifest format (e.g., "pack-v1").
	SchemaVersion string `json:"schema_version"`

	// PackID is the logical identifier of this pack.
	PackID ref.PackID `json:"pack_id"`

	// Name is an optional human-readable display name.
	Name string `json:"name,omitempty"`

	// Version is the pack's semantic version without a "v" prefix
	// (e.g., "1.4.0").
	Version string `json:"version"`

	Kind PackKind `json:"kind"`

	// Publisher names the party that publishes the pack.
	Publisher string `json:"publisher"`

	Components   []Component  `json:"components"`
	Flows        []FlowEntry  `json:"flows"`
	Dependencies []Dependency `json:"dependencies"`
	Capabilities []Capability `json:"capabilities"`

	// SecretRequirements lists the secrets the pack needs at runtime.
	SecretRequirements []SecretRequirement `json:"secret_requirements,omitempty"`

	Signatures Signatures `json:"signatures"`

	// Bootstrap names the flows and component used to install and
	// upgrade the pack. Nil when the pack needs no bootstrap.
	Bootstrap *BootstrapSpec `json:"bootstrap,omitempty"`

	// Extensions maps extension identifiers to references. Nil and
	// empty are equivalent.
	Extensions map[string]ExtensionRef `json:"extensions,omitempty"`
}

// FlowEntry is a flow bundled in a pack together with its catalog
// metadata.
type FlowEntry struct {
	ID   ref.FlowID `json:"id"`
	Kind FlowKind   `json:"kind"`
	Flow Flow       `json:"flow"`

	// Tags are free-form labels for catalog search.
	Tags []string `json:"tags"`

	// Entrypoints lists the names of the flow's entrypoints that are
	// exposed outside the pack.
	Entrypoints []string `json:"entrypoints"`
}

// Dependency is a reference to another pack.
type Dependency struct {
	// Alias is the local name nodes use to address components of
	// the dependency (see [ComponentRef.PackAlias]).
	Alias string `json:"alias"`

	PackID ref.PackID `json:"pack_id"`

	// VersionReq is a semantic version requirement such as "^1.2"
	// or ">=1.0.0, <2.0.0".
	VersionReq string `json:"version_req"`

	// RequiredCapabilities names capabilities this pack needs the
	// dependency to provide.
	RequiredCapabilities []string `json:"required_capabilities"`
}

// Capability is a capability declared by the pack.
type Capability struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SecretRequirement declares a secret the pack reads at runtime.
type SecretRequirement struct {
	Key         string `json:"key"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`

	// Format hints at the secret's encoding (e.g., "text", "json").
	Format string `json:"format,omitempty"`

	Examples []string `json:"examples,omitempty"`
}

// Signatures holds detached signatures over the pack.
type Signatures struct {
	Signatures []Signature `json:"signatures"`
}

// Signature is one detached signature.
type Signature struct {
	KeyID     string `json:"key_id"`
	Algorithm string `json:"algorithm"`
	Signature []byte `json:"signature"`
}

// BootstrapSpec names the flows and component that install and
// upgrade a pack.
type BootstrapSpec struct {
	InstallFlow        string `json:"install_flow,omitempty"`
	UpgradeFlow        string `json:"upgrade_flow,omitempty"`
	InstallerComponent string `json:"installer_component,omitempty"`
}

// ExtensionRef points at an extension payload, either inline or by
// location.
type ExtensionRef struct {
	// Kind identifies the extension type (e.g.,
	// "greentic.ext.provider").
	Kind    string `json:"kind"`
	Version string `json:"version"`

	// Digest optionally pins the referenced payload.
	Digest   string `json:"digest,omitempty"`
	Location string `json:"location,omitempty"`

	// Inline carries small extension payloads directly.
	Inline *canonical.Value `json:"inline,omitempty"`
}
