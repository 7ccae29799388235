// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contentid

import (
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/crockford"
)

// DigestSize is the number of hash bytes an identifier encodes.
const DigestSize = 16

// Digest is a BLAKE3 hash truncated to [DigestSize] bytes.
type Digest [DigestSize]byte

// Hash128 returns the first 16 bytes of the BLAKE3 hash of data.
func Hash128(data []byte) Digest {
	full := blake3.Sum256(data)
	var digest Digest
	copy(digest[:], full[:DigestSize])
	return digest
}

// ID is a parsed content identifier. The zero value is not a valid
// identifier; check with [ID.IsZero].
type ID struct {
	prefix  Prefix
	payload string
}

// String returns the identifier text, e.g.
// "schema:v1:8ZQ3V0N3M5R1C2W9H8Q4T6Y7XG".
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.prefix.String() + id.payload
}

// IsZero reports whether the identifier is the zero value.
func (id ID) IsZero() bool { return id.prefix.Namespace == "" }

// Prefix returns the namespace and version of the identifier.
func (id ID) Prefix() Prefix { return id.prefix }

// Payload returns the Base32 text after the prefix, exactly as given
// when the identifier was parsed.
func (id ID) Payload() string { return id.payload }

// Digest decodes the payload. It fails when the payload does not
// hold exactly [DigestSize] bytes, which can happen for identifiers
// parsed from text produced elsewhere.
func (id ID) Digest() (Digest, error) {
	decoded, err := crockford.Decode(id.payload)
	if err != nil {
		return Digest{}, fmt.Errorf("contentid: invalid base32 payload: %w", err)
	}
	if len(decoded) != DigestSize {
		return Digest{}, fmt.Errorf("contentid: payload decodes to %d bytes, want %d", len(decoded), DigestSize)
	}
	var digest Digest
	copy(digest[:], decoded)
	return digest, nil
}

// MarshalText implements [encoding.TextMarshaler].
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Any namespace
// is accepted. Empty input yields the zero value.
func (id *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = ID{}
		return nil
	}
	parsed, err := ParseAny(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// FromDigest formats a digest under the given prefix.
func FromDigest(digest Digest, prefix Prefix) (ID, error) {
	if err := prefix.Validate(); err != nil {
		return ID{}, err
	}
	return ID{prefix: prefix, payload: crockford.Encode(digest[:])}, nil
}

// Derive computes the identifier of a CBOR document. The input is
// canonicalized first, so documents differing only in map key order or
// length encoding derive the same identifier. Malformed input and
// documents containing floats, tags, or non-text map keys fail with
// the corresponding [canonical] error.
func Derive(data []byte, prefix Prefix) (ID, error) {
	if err := prefix.Validate(); err != nil {
		return ID{}, err
	}
	canonicalBytes, err := canonical.Canonicalize(data)
	if err != nil {
		return ID{}, fmt.Errorf("contentid: deriving %s identifier: %w", prefix.Namespace, err)
	}
	return FromDigest(Hash128(canonicalBytes), prefix)
}

// DeriveStrict computes the identifier of a document that must
// already be canonical. Any difference from the canonical form fails
// with [canonical.ErrNotCanonical].
func DeriveStrict(data []byte, prefix Prefix) (ID, error) {
	if err := prefix.Validate(); err != nil {
		return ID{}, err
	}
	if err := canonical.EnsureCanonical(data); err != nil {
		return ID{}, fmt.Errorf("contentid: deriving %s identifier: %w", prefix.Namespace, err)
	}
	return FromDigest(Hash128(data), prefix)
}

// DeriveValue encodes an arbitrary Go value to canonical CBOR and
// derives its identifier.
func DeriveValue(v any, prefix Prefix) (ID, error) {
	if err := prefix.Validate(); err != nil {
		return ID{}, err
	}
	canonicalBytes, err := canonical.ToCanonical(v)
	if err != nil {
		return ID{}, fmt.Errorf("contentid: deriving %s identifier: %w", prefix.Namespace, err)
	}
	return FromDigest(Hash128(canonicalBytes), prefix)
}

// Parse validates that text starts with prefix and that the remainder
// is clean Base32. It does not check the payload length or re-verify
// any hash. Errors wrap [ErrInvalidPrefix] or a [crockford] error.
func Parse(text string, prefix Prefix) (ID, error) {
	rest, ok := cutPrefix(text, prefix)
	if !ok {
		return ID{}, fmt.Errorf("%w: %q must begin with %q", ErrInvalidPrefix, text, prefix.String())
	}
	if _, err := crockford.Decode(rest); err != nil {
		return ID{}, fmt.Errorf("contentid: invalid base32 payload in %q: %w", text, err)
	}
	return ID{prefix: prefix, payload: rest}, nil
}

// ParseAny parses an identifier under whatever prefix it carries.
func ParseAny(text string) (ID, error) {
	prefix, _, err := ParsePrefix(text)
	if err != nil {
		return ID{}, err
	}
	return Parse(text, prefix)
}

// MustParse is like [Parse] but panics on error. Use for constants
// and test fixtures.
func MustParse(text string, prefix Prefix) ID {
	id, err := Parse(text, prefix)
	if err != nil {
		panic(fmt.Sprintf("contentid.MustParse(%q): %v", text, err))
	}
	return id
}

func cutPrefix(text string, prefix Prefix) (string, bool) {
	if prefix.Namespace == "" {
		return "", false
	}
	expected := prefix.String()
	if len(text) < len(expected) || text[:len(expected)] != expected {
		return "", false
	}
	return text[len(expected):], true
}
