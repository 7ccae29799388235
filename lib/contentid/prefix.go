// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contentid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPrefix is returned when an identifier does not start with
// the expected "<namespace>:v<version>:" prefix.
var ErrInvalidPrefix = errors.New("contentid: invalid identifier prefix")

// Prefix is the namespace and version that lead every identifier.
type Prefix struct {
	Namespace string
	Version   uint
}

// Well-known prefixes.
var (
	SchemaPrefix   = Prefix{Namespace: "schema", Version: 1}
	I18nPrefix     = Prefix{Namespace: "i18n", Version: 1}
	DocumentPrefix = Prefix{Namespace: "doc", Version: 1}
)

// String renders the prefix including its trailing separator, e.g.
// "schema:v1:".
func (p Prefix) String() string {
	return p.Namespace + ":v" + strconv.FormatUint(uint64(p.Version), 10) + ":"
}

// Validate checks that the namespace is non-empty and made of ASCII
// letters, digits, '.', '_' and '-'. The version may be any value.
func (p Prefix) Validate() error {
	if p.Namespace == "" {
		return fmt.Errorf("%w: empty namespace", ErrInvalidPrefix)
	}
	for i := 0; i < len(p.Namespace); i++ {
		if !isNamespaceChar(p.Namespace[i]) {
			return fmt.Errorf("%w: namespace %q contains invalid character %q at position %d",
				ErrInvalidPrefix, p.Namespace, p.Namespace[i], i)
		}
	}
	return nil
}

// ParsePrefix splits an identifier into its prefix and payload. Only
// the prefix syntax is checked; the payload is returned as-is.
func ParsePrefix(text string) (Prefix, string, error) {
	namespace, rest, found := strings.Cut(text, ":")
	if !found {
		return Prefix{}, "", fmt.Errorf("%w: %q has no namespace separator", ErrInvalidPrefix, text)
	}
	versionText, payload, found := strings.Cut(rest, ":")
	if !found {
		return Prefix{}, "", fmt.Errorf("%w: %q has no version separator", ErrInvalidPrefix, text)
	}

	digits, ok := strings.CutPrefix(versionText, "v")
	if !ok || digits == "" {
		return Prefix{}, "", fmt.Errorf("%w: version %q must be 'v' followed by digits", ErrInvalidPrefix, versionText)
	}
	if len(digits) > 1 && digits[0] == '0' {
		return Prefix{}, "", fmt.Errorf("%w: version %q has a leading zero", ErrInvalidPrefix, versionText)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Prefix{}, "", fmt.Errorf("%w: version %q must be 'v' followed by digits", ErrInvalidPrefix, versionText)
		}
	}
	version, err := strconv.ParseUint(digits, 10, strconv.IntSize)
	if err != nil {
		return Prefix{}, "", fmt.Errorf("%w: version %q: %v", ErrInvalidPrefix, versionText, err)
	}

	prefix := Prefix{Namespace: namespace, Version: uint(version)}
	if err := prefix.Validate(); err != nil {
		return Prefix{}, "", err
	}
	return prefix, payload, nil
}

func isNamespaceChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '.' || c == '_' || c == '-'
}
