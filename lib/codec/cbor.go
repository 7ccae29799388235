// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Decoding limits. Input beyond them fails as malformed.
const (
	// MaxNestedLevels is the deepest array/map nesting accepted.
	MaxNestedLevels = 256

	// MaxContainerItems is the largest array length or map pair
	// count accepted.
	MaxContainerItems = 64 << 20
)

// encMode is the CBOR encoder configured with canonical encoding
// (RFC 7049 §3.9): map keys and struct fields sorted length-first then
// bytewise, smallest integer encoding, no indefinite-length items. Same
// logical data always produces identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder used for every document. Unknown struct
// fields are ignored so older readers accept newer documents. Duplicate
// map keys are rejected: a map with two equal keys has no canonical form.
var decMode cbor.DecMode

// untaggedDecMode is decMode with CBOR tags (major type 6) forbidden
// anywhere in the input, including the self-described CBOR tag that
// decMode silently strips.
var untaggedDecMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CanonicalEncOptions()
	// Typed identifiers (ref.PackID, ref.NodeID, ...) serialize as CBOR
	// text strings via MarshalText. Without this, struct types with
	// unexported fields would serialize as empty CBOR maps.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encOptions.BigIntConvert = cbor.BigIntConvertShortest
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decOptions := cbor.DecOptions{
		// The fxamacker defaults (32 levels, 131072 elements) reject
		// valid documents. Nesting is bounded by recursion depth; the
		// element counts by the largest stored document, which cannot
		// hold more items than bytes.
		MaxNestedLevels:  MaxNestedLevels,
		MaxArrayElements: MaxContainerItems,
		MaxMapPairs:      MaxContainerItems,
		// Documents never use non-string map keys. When the target is
		// interface{}/any the decoder must pick a concrete map type; the
		// CBOR default map[interface{}]interface{} does not interoperate
		// with encoding/json. Struct decoding is unaffected.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		// Mirrors the TextMarshaler setting above for round-trip
		// correctness of typed identifiers.
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}
	decMode, err = decOptions.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	decOptions.TagsMd = cbor.TagsForbidden
	untaggedDecMode, err = decOptions.DecMode()
	if err != nil {
		panic("codec: untagged CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using canonical encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Trailing bytes after the first
// data item are an error.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// UnmarshalUntagged is Unmarshal with CBOR tags forbidden. A tag
// anywhere in data fails with *TagsMdError before any decoding happens.
func UnmarshalUntagged(data []byte, v any) error {
	return untaggedDecMode.Unmarshal(data, v)
}

// Wellformed reports whether data is a single well-formed CBOR data
// item, without decoding it into a Go value.
func Wellformed(data []byte) error {
	return decMode.Wellformed(data)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Decoder = cbor.Decoder

// RawMessage is a raw encoded CBOR value. It implements
// cbor.Marshaler and cbor.Unmarshaler so it can be used to delay
// CBOR decoding or pre-encode CBOR output.
type RawMessage = cbor.RawMessage

// DupMapKeyError is returned by Unmarshal when a CBOR map repeats a
// key.
type DupMapKeyError = cbor.DupMapKeyError

// TagsMdError is returned by UnmarshalUntagged when data contains a
// CBOR tag.
type TagsMdError = cbor.TagsMdError

// NewEncoder returns a CBOR encoder that writes to w using the
// canonical encoding configuration.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r using the
// standard decoding configuration.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes. Use
// this to process CBOR sequences one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
