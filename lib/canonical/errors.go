// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/flowtypes/lib/codec"
)

// ErrNotCanonical is the family of all canonical-rule violations. A
// bare ErrNotCanonical from [EnsureCanonical] means the input decoded
// cleanly but its bytes differ from the canonical form (unsorted keys,
// indefinite lengths, non-minimal integer heads).
var ErrNotCanonical = errors.New("canonical: payload is not canonical")

// Specific rule violations. Each wraps ErrNotCanonical.
var (
	ErrNonStringMapKey       = fmt.Errorf("%w: map keys must be text strings", ErrNotCanonical)
	ErrFloatNotAllowed       = fmt.Errorf("%w: floats are not allowed", ErrNotCanonical)
	ErrTagNotAllowed         = fmt.Errorf("%w: tags are not allowed", ErrNotCanonical)
	ErrSimpleValueNotAllowed = fmt.Errorf("%w: simple values other than true, false, and null are not allowed", ErrNotCanonical)
	ErrDuplicateKey          = fmt.Errorf("%w: duplicate map key", ErrNotCanonical)
)

// DecodeError reports input that is not well-formed CBOR, or that the
// decoder could not map onto the requested Go type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "canonical: CBOR decode failed: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a value that could not be serialized.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "canonical: CBOR encode failed: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error { return e.Err }

// classifyDecode keeps canonical-rule violations raised while walking
// the value tree and wraps everything else as a DecodeError.
func classifyDecode(err error) error {
	if errors.Is(err, ErrNotCanonical) {
		return err
	}
	var tagged *codec.TagsMdError
	if errors.As(err, &tagged) {
		return ErrTagNotAllowed
	}
	var duplicate *codec.DupMapKeyError
	if errors.As(err, &duplicate) {
		if key, ok := duplicate.Key.(mapKey); ok {
			return fmt.Errorf("%w %q", ErrDuplicateKey, key.text)
		}
		return fmt.Errorf("%w at entry %d", ErrDuplicateKey, duplicate.Index)
	}
	return &DecodeError{Err: err}
}
