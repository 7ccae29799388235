// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import "fmt"

// maxIdentifierLength bounds identifiers so that symbol tables and
// file names derived from them stay reasonable.
const maxIdentifierLength = 256

// allowedChars is the set of characters permitted in identifiers:
// ASCII letters, digits, and the symbols . _ -.
var allowedChars [256]bool

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		allowedChars[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		allowedChars[c] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		allowedChars[c] = true
	}
	allowedChars['.'] = true
	allowedChars['_'] = true
	allowedChars['-'] = true
}

// InvalidError reports an identifier that failed validation. Kind
// names the identifier type ("pack ID", "node ID", ...).
type InvalidError struct {
	Kind   string
	Value  string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Reason)
}

// validateIdentifier enforces the identifier rules shared by every ref
// type.
func validateIdentifier(value, kind string) error {
	if value == "" {
		return &InvalidError{Kind: kind, Value: value, Reason: "must not be empty"}
	}
	if len(value) > maxIdentifierLength {
		return &InvalidError{
			Kind:   kind,
			Value:  value,
			Reason: fmt.Sprintf("is %d characters, maximum is %d", len(value), maxIdentifierLength),
		}
	}
	for i := 0; i < len(value); i++ {
		if !allowedChars[value[i]] {
			return &InvalidError{
				Kind:   kind,
				Value:  value,
				Reason: fmt.Sprintf("invalid character %q at position %d (allowed: A-Z, a-z, 0-9, ., _, -)", value[i], i),
			}
		}
	}
	return nil
}
