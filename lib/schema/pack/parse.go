// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ParseManifest strips JSONC comments and trailing commas from data,
// then unmarshals the result into a Manifest. The manifest is not
// validated; call [Manifest.Validate].
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &manifest); err != nil {
		return nil, fmt.Errorf("parsing pack manifest: %w", err)
	}
	return &manifest, nil
}
