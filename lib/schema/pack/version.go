// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion indicates a version or version requirement that is
// not valid semantic versioning.
var ErrInvalidVersion = errors.New("invalid semantic version")

// ValidateVersion checks that version is a complete semantic version
// (MAJOR.MINOR.PATCH with optional pre-release and build metadata),
// written without a "v" prefix.
func ValidateVersion(version string) error {
	if version == "" || strings.HasPrefix(version, "v") {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	prefixed := "v" + version
	if !semver.IsValid(prefixed) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	// semver accepts "v1" and "v1.2" shorthands; Canonical expands
	// them, so a full version is one Canonical leaves unchanged
	// (ignoring build metadata, which Canonical drops).
	withoutBuild, _, _ := strings.Cut(prefixed, "+")
	if semver.Canonical(prefixed) != withoutBuild {
		return fmt.Errorf("%w: %q is not MAJOR.MINOR.PATCH", ErrInvalidVersion, version)
	}
	return nil
}

// CompareVersions compares two versions accepted by ValidateVersion,
// returning -1, 0, or +1.
func CompareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

// requirementOperators in match order: two-character operators first.
var requirementOperators = []string{">=", "<=", ">", "<", "=", "~", "^"}

// ValidateVersionReq checks a version requirement: "*", or a
// comma-separated list of comparators such as "^1.2", ">=1.0.0",
// "~2.3.1-beta", or "1.*". Versions in comparators may be partial.
func ValidateVersionReq(req string) error {
	req = strings.TrimSpace(req)
	if req == "" {
		return fmt.Errorf("%w: empty version requirement", ErrInvalidVersion)
	}
	if req == "*" {
		return nil
	}
	for comparator := range strings.SplitSeq(req, ",") {
		if err := validateComparator(strings.TrimSpace(comparator)); err != nil {
			return fmt.Errorf("version requirement %q: %w", req, err)
		}
	}
	return nil
}

func validateComparator(comparator string) error {
	version := comparator
	for _, operator := range requirementOperators {
		if rest, ok := strings.CutPrefix(comparator, operator); ok {
			version = strings.TrimSpace(rest)
			break
		}
	}

	// Trailing wildcards ("1.*", "1.2.x") narrow to the shorthand
	// forms semver understands.
	for {
		trimmed, found := cutWildcard(version)
		if !found {
			break
		}
		version = trimmed
	}
	if version == "" || version == "*" {
		return fmt.Errorf("%w: comparator %q has no version", ErrInvalidVersion, comparator)
	}
	if !semver.IsValid("v" + version) {
		return fmt.Errorf("%w: comparator %q", ErrInvalidVersion, comparator)
	}
	return nil
}

func cutWildcard(version string) (string, bool) {
	for _, suffix := range []string{".*", ".x", ".X"} {
		if trimmed, ok := strings.CutSuffix(version, suffix); ok {
			return trimmed, true
		}
	}
	return version, false
}
