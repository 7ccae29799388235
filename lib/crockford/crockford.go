// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package crockford implements the restricted Crockford Base32 alphabet
// used to render content identifier digests.
//
// The alphabet is the digits 0-9 and the 22 uppercase letters that
// remain after removing I, L, O, and U. Encoding packs 5 bits at a
// time, most significant bit first; a trailing partial group is padded
// with zero bits and no padding characters are emitted. Decoding is
// case-insensitive and maps the ambiguous letters I and L to 1 and O to
// 0, so identifiers survive being read aloud or retyped.
package crockford

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet is the 32-symbol encoding alphabet, indexed by 5-bit value.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ErrIncompleteByte is returned by Decode when the bits left over after
// the last full byte are not all zero. Encode never produces such
// input, so it indicates a truncated or hand-edited identifier.
var ErrIncompleteByte = errors.New("crockford: incomplete trailing bits")

// InvalidCharacterError reports a character outside the alphabet.
type InvalidCharacterError struct {
	Char     rune
	Position int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("crockford: invalid character %q at position %d", e.Char, e.Position)
}

// decodeTable maps an ASCII byte to its 5-bit value, or -1.
var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for value := 0; value < len(Alphabet); value++ {
		upper := Alphabet[value]
		decodeTable[upper] = int8(value)
		if upper >= 'A' && upper <= 'Z' {
			decodeTable[upper+('a'-'A')] = int8(value)
		}
	}
	for _, ambiguous := range []struct {
		letter byte
		value  int8
	}{
		{'I', 1}, {'i', 1},
		{'L', 1}, {'l', 1},
		{'O', 0}, {'o', 0},
	} {
		decodeTable[ambiguous.letter] = ambiguous.value
	}
}

// EncodedLen returns the number of characters Encode produces for n
// input bytes.
func EncodedLen(n int) int {
	return (n*8 + 4) / 5
}

// Encode renders data as uppercase Base32 without padding.
func Encode(data []byte) string {
	var builder strings.Builder
	builder.Grow(EncodedLen(len(data)))

	var buffer uint32
	available := 0
	for _, b := range data {
		buffer = buffer<<8 | uint32(b)
		available += 8
		for available >= 5 {
			available -= 5
			builder.WriteByte(Alphabet[(buffer>>available)&0x1f])
		}
	}
	if available > 0 {
		builder.WriteByte(Alphabet[(buffer<<(5-available))&0x1f])
	}
	return builder.String()
}

// Decode parses Base32 text produced by Encode. Lowercase input and the
// ambiguous letters I, L, and O are accepted.
func Decode(text string) ([]byte, error) {
	output := make([]byte, 0, len(text)*5/8)

	var buffer uint32
	bits := 0
	for position, char := range text {
		if char >= 0x80 || decodeTable[char] < 0 {
			return nil, &InvalidCharacterError{Char: char, Position: position}
		}
		buffer = buffer<<5 | uint32(decodeTable[char])
		bits += 5
		if bits >= 8 {
			bits -= 8
			output = append(output, byte(buffer>>bits))
		}
	}

	if bits > 0 && buffer&(1<<bits-1) != 0 {
		return nil, ErrIncompleteByte
	}
	return output, nil
}
