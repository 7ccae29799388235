// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"slices"

	"github.com/bureau-foundation/flowtypes/lib/codec"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger
	KindBytes
	KindText
	KindBool
	KindNull
	KindArray
	KindMap
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(k))
	}
}

// CBOR major types, from the high three bits of an item's first byte.
const (
	majorUnsigned = 0
	majorNegative = 1
	majorBytes    = 2
	majorText     = 3
	majorArray    = 4
	majorMap      = 5
	majorTag      = 6
	majorSimple   = 7
)

// Simple-value and float initial bytes (major type 7).
const (
	headFalse   = 0xf4
	headTrue    = 0xf5
	headNull    = 0xf6
	headFloat16 = 0xf9
	headFloat32 = 0xfa
	headFloat64 = 0xfb
)

// Value is one node of the canonical value tree. The zero Value is
// invalid; build values with the constructors ([Int], [Uint], [Text],
// [Map], ...) or obtain them from [Decode].
//
// Integers cover the full CBOR range: unsigned values up to 2^64-1 and
// negative values down to -2^64. A negative integer is stored the way
// CBOR stores it, as a magnitude m meaning -1-m.
type Value struct {
	kind      Kind
	negative  bool
	magnitude uint64
	bytes     []byte
	text      string
	boolean   bool
	items     []Value
	entries   []Entry
}

// Entry is one key/value pair of a map Value.
type Entry struct {
	Key   string
	Value Value
}

// Int returns an integer Value.
func Int(n int64) Value {
	if n < 0 {
		return Value{kind: KindInteger, negative: true, magnitude: uint64(^n)}
	}
	return Value{kind: KindInteger, magnitude: uint64(n)}
}

// Uint returns a non-negative integer Value.
func Uint(n uint64) Value {
	return Value{kind: KindInteger, magnitude: n}
}

// NegativeInt returns the integer -1-magnitude, reaching down to -2^64.
func NegativeInt(magnitude uint64) Value {
	return Value{kind: KindInteger, negative: true, magnitude: magnitude}
}

// Bytes returns a byte string Value. The slice is not copied.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: b}
}

// Text returns a text string Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Null returns the null Value.
func Null() Value {
	return Value{kind: KindNull}
}

// Array returns an array Value holding items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Map returns a map Value. Entry order is irrelevant to the canonical
// encoding; duplicate keys make the value unencodable.
func Map(entries ...Entry) Value {
	return Value{kind: KindMap, entries: entries}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Integer returns the sign and magnitude of an integer Value: the
// value is magnitude when negative is false and -1-magnitude otherwise.
func (v Value) Integer() (negative bool, magnitude uint64) {
	return v.negative, v.magnitude
}

// Int64 returns the integer as an int64 when it fits.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInteger || v.magnitude > math.MaxInt64 {
		return 0, false
	}
	if v.negative {
		return ^int64(v.magnitude), true
	}
	return int64(v.magnitude), true
}

// ByteString returns the contents of a byte string Value.
func (v Value) ByteString() []byte { return v.bytes }

// TextString returns the contents of a text string Value.
func (v Value) TextString() string { return v.text }

// Boolean returns the contents of a boolean Value.
func (v Value) Boolean() bool { return v.boolean }

// Items returns the elements of an array Value.
func (v Value) Items() []Value { return v.items }

// Entries returns the entries of a map Value. Values produced by
// [Decode] hold their entries in canonical order.
func (v Value) Entries() []Entry { return v.entries }

// Lookup returns the value stored under key in a map Value.
func (v Value) Lookup(key string) (Value, bool) {
	for _, entry := range v.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// CompareKeys orders map keys for canonical encoding: shorter keys
// first, keys of equal length bytewise. It returns a negative number
// when a sorts before b, zero when they are equal, and a positive
// number otherwise.
func CompareKeys(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Normalize returns a copy of v with every map's entries sorted by
// [CompareKeys], recursively.
func (v Value) Normalize() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for index, item := range v.items {
			items[index] = item.Normalize()
		}
		return Value{kind: KindArray, items: items}

	case KindMap:
		entries := make([]Entry, len(v.entries))
		for index, entry := range v.entries {
			entries[index] = Entry{Key: entry.Key, Value: entry.Value.Normalize()}
		}
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return CompareKeys(a.Key, b.Key)
		})
		return Value{kind: KindMap, entries: entries}

	default:
		return v
	}
}

// Canonical returns the canonical encoding of v.
func (v Value) Canonical() ([]byte, error) {
	data, err := v.MarshalCBOR()
	if err != nil {
		if errors.Is(err, ErrNotCanonical) {
			return nil, err
		}
		return nil, &EncodeError{Err: err}
	}
	return data, nil
}

// MarshalCBOR implements cbor.Marshaler, so a Value can be embedded in
// any structure encoded through lib/codec.
func (v Value) MarshalCBOR() ([]byte, error) {
	native, err := v.native()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(native)
}

// native converts v into the Go representation the encoder writes in
// canonical form. Maps become map[string]any, which the encoder sorts
// length-first, the same order as CompareKeys.
func (v Value) native() (any, error) {
	switch v.kind {
	case KindInteger:
		if !v.negative {
			return v.magnitude, nil
		}
		if v.magnitude <= math.MaxInt64 {
			return ^int64(v.magnitude), nil
		}
		wide := new(big.Int).SetUint64(v.magnitude)
		wide.Add(wide, big.NewInt(1))
		return wide.Neg(wide), nil

	case KindBytes:
		// A nil slice would encode as CBOR null.
		if v.bytes == nil {
			return []byte{}, nil
		}
		return v.bytes, nil

	case KindText:
		return v.text, nil

	case KindBool:
		return v.boolean, nil

	case KindNull:
		return nil, nil

	case KindArray:
		items := make([]any, len(v.items))
		for index, item := range v.items {
			converted, err := item.native()
			if err != nil {
				return nil, err
			}
			items[index] = converted
		}
		return items, nil

	case KindMap:
		entries := make(map[string]any, len(v.entries))
		for _, entry := range v.entries {
			if _, exists := entries[entry.Key]; exists {
				return nil, fmt.Errorf("%w %q", ErrDuplicateKey, entry.Key)
			}
			converted, err := entry.Value.native()
			if err != nil {
				return nil, err
			}
			entries[entry.Key] = converted
		}
		return entries, nil

	default:
		return nil, fmt.Errorf("canonical: cannot encode %s value", v.kind)
	}
}

// UnmarshalCBOR implements cbor.Unmarshaler. data is exactly one
// well-formed data item; the decoder has already checked that. The
// item's major type selects the variant, and canonical-rule violations
// are reported as soon as they are seen.
func (v *Value) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return io.ErrUnexpectedEOF
	}

	switch data[0] >> 5 {
	case majorUnsigned:
		var n uint64
		if err := codec.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Uint(n)

	case majorNegative:
		var decoded any
		if err := codec.Unmarshal(data, &decoded); err != nil {
			return err
		}
		magnitude, err := negativeMagnitude(decoded)
		if err != nil {
			return err
		}
		*v = NegativeInt(magnitude)

	case majorBytes:
		var b []byte
		if err := codec.Unmarshal(data, &b); err != nil {
			return err
		}
		if b == nil {
			b = []byte{}
		}
		*v = Bytes(b)

	case majorText:
		var s string
		if err := codec.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)

	case majorArray:
		var items []Value
		if err := codec.Unmarshal(data, &items); err != nil {
			return err
		}
		if items == nil {
			items = []Value{}
		}
		*v = Array(items...)

	case majorMap:
		var decoded map[mapKey]Value
		if err := codec.Unmarshal(data, &decoded); err != nil {
			return err
		}
		entries := make([]Entry, 0, len(decoded))
		for key, value := range decoded {
			entries = append(entries, Entry{Key: key.text, Value: value})
		}
		slices.SortFunc(entries, func(a, b Entry) int {
			return CompareKeys(a.Key, b.Key)
		})
		*v = Map(entries...)

	case majorTag:
		return ErrTagNotAllowed

	case majorSimple:
		switch data[0] {
		case headFalse:
			*v = Bool(false)
		case headTrue:
			*v = Bool(true)
		case headNull:
			*v = Null()
		case headFloat16, headFloat32, headFloat64:
			return ErrFloatNotAllowed
		default:
			return ErrSimpleValueNotAllowed
		}
	}
	return nil
}

// negativeMagnitude recovers m from a decoded CBOR negative integer
// -1-m. The decoder yields int64 when the value fits and big.Int below
// math.MinInt64.
func negativeMagnitude(decoded any) (uint64, error) {
	switch n := decoded.(type) {
	case int64:
		return uint64(^n), nil
	case big.Int:
		return bigMagnitude(&n), nil
	case *big.Int:
		return bigMagnitude(n), nil
	default:
		return 0, fmt.Errorf("canonical: unexpected negative integer representation %T", decoded)
	}
}

func bigMagnitude(n *big.Int) uint64 {
	magnitude := new(big.Int).Neg(n)
	magnitude.Sub(magnitude, big.NewInt(1))
	return magnitude.Uint64()
}

// mapKey decodes a map key, rejecting every key that is not a text
// string before it can be hashed into the Go map.
type mapKey struct {
	text string
}

func (k *mapKey) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 || data[0]>>5 != majorText {
		return ErrNonStringMapKey
	}
	return codec.Unmarshal(data, &k.text)
}

// IsZero reports whether v is the zero (invalid) Value.
func (v Value) IsZero() bool { return v.kind == KindInvalid }

// Equal reports whether v and other hold the same tree. Map entry
// order is ignored; a nil and an empty byte string are equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.negative == other.negative && v.magnitude == other.magnitude
	case KindBytes:
		return bytes.Equal(v.bytes, other.bytes)
	case KindText:
		return v.text == other.text
	case KindBool:
		return v.boolean == other.boolean
	case KindArray:
		return slices.EqualFunc(v.items, other.items, Value.Equal)
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		left, right := v.Normalize(), other.Normalize()
		return slices.EqualFunc(left.entries, right.entries, func(a, b Entry) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	default:
		return true
	}
}
