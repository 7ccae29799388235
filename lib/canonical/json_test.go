// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestFromJSONMatchesCBOR(t *testing.T) {
	value, err := FromJSON([]byte(`{"b": 1, "a": [true, null, "x", -7], "zz": {"k": 18446744073709551615}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	want := Map(
		Entry{Key: "a", Value: Array(Bool(true), Null(), Text("x"), Int(-7))},
		Entry{Key: "b", Value: Int(1)},
		Entry{Key: "zz", Value: Map(Entry{Key: "k", Value: Uint(math.MaxUint64)})},
	)
	if !value.Equal(want) {
		t.Fatalf("FromJSON = %+v, want %+v", value, want)
	}

	fromJSON, err := value.Canonical()
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	direct, err := want.Canonical()
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if !bytes.Equal(fromJSON, direct) {
		t.Errorf("canonical bytes differ: %x vs %x", fromJSON, direct)
	}
}

func TestFromJSONRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"fraction", `{"a": 1.5}`, ErrFloatNotAllowed},
		{"exponent", `[1e3]`, ErrFloatNotAllowed},
		{"duplicate key", `{"a": 1, "a": 2}`, ErrDuplicateKey},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := FromJSON([]byte(test.input)); !errors.Is(err, test.want) {
				t.Errorf("FromJSON(%s): err = %v, want %v", test.input, err, test.want)
			}
		})
	}

	for _, input := range []string{`{"a": }`, `[1, 2`, `1 2`, `-18446744073709551617`, `""x`} {
		if _, err := FromJSON([]byte(input)); err == nil {
			t.Errorf("FromJSON(%s) succeeded", input)
		}
	}
}

func TestJSONIntegerRange(t *testing.T) {
	value, err := FromJSON([]byte(`-18446744073709551616`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if negative, magnitude := value.Integer(); !negative || magnitude != math.MaxUint64 {
		t.Errorf("Integer() = (%v, %d), want (true, MaxUint64)", negative, magnitude)
	}

	rendered, err := value.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(rendered) != "-18446744073709551616" {
		t.Errorf("MarshalJSON = %s", rendered)
	}
}

func TestMarshalJSONOrdersKeys(t *testing.T) {
	value := Map(
		Entry{Key: "aaa", Value: Int(1)},
		Entry{Key: "b", Value: Bytes([]byte{0x01, 0x02})},
		Entry{Key: "a", Value: Text("<x>")},
	)
	rendered, err := value.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"a":"<x>","b":"AQI=","aaa":1}`
	if string(rendered) != want {
		t.Errorf("MarshalJSON = %s, want %s", rendered, want)
	}

	if _, err := (Value{}).MarshalJSON(); err == nil {
		t.Error("MarshalJSON of the zero Value succeeded")
	}
}

func TestValueEqual(t *testing.T) {
	left := Map(Entry{Key: "a", Value: Int(1)}, Entry{Key: "b", Value: Bytes(nil)})
	right := Map(Entry{Key: "b", Value: Bytes([]byte{})}, Entry{Key: "a", Value: Uint(1)})
	if !left.Equal(right) {
		t.Error("maps differing only in entry order compare unequal")
	}
	if Int(1).Equal(Int(-1)) {
		t.Error("1 equals -1")
	}
	if Text("1").Equal(Int(1)) {
		t.Error("text equals integer")
	}
	if !Null().Equal(Null()) || !(Value{}).Equal(Value{}) {
		t.Error("null or zero values compare unequal")
	}
}
