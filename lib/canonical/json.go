// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// MarshalJSON renders v as JSON with map keys in canonical order. Byte
// strings have no JSON form and are written as standard base64 text,
// so they read back as text strings.
func (v Value) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if err := v.writeJSON(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (v Value) writeJSON(buffer *bytes.Buffer) error {
	switch v.kind {
	case KindInteger:
		buffer.WriteString(v.integerText())
	case KindBytes:
		return writeJSONString(buffer, base64.StdEncoding.EncodeToString(v.bytes))
	case KindText:
		return writeJSONString(buffer, v.text)
	case KindBool:
		buffer.WriteString(strconv.FormatBool(v.boolean))
	case KindNull:
		buffer.WriteString("null")
	case KindArray:
		buffer.WriteByte('[')
		for index, item := range v.items {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := item.writeJSON(buffer); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
	case KindMap:
		buffer.WriteByte('{')
		for index, entry := range v.Normalize().entries {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := writeJSONString(buffer, entry.Key); err != nil {
				return err
			}
			buffer.WriteByte(':')
			if err := entry.Value.writeJSON(buffer); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
	default:
		return fmt.Errorf("canonical: cannot render %s value as JSON", v.kind)
	}
	return nil
}

func writeJSONString(buffer *bytes.Buffer, s string) error {
	var encoded bytes.Buffer
	encoder := json.NewEncoder(&encoded)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return err
	}
	buffer.Write(bytes.TrimSuffix(encoded.Bytes(), []byte("\n")))
	return nil
}

// integerText formats an integer Value in decimal.
func (v Value) integerText() string {
	if !v.negative {
		return strconv.FormatUint(v.magnitude, 10)
	}
	wide := new(big.Int).SetUint64(v.magnitude)
	wide.Add(wide, big.NewInt(1))
	return "-" + wide.String()
}

// UnmarshalJSON parses a JSON document into a Value. Numbers must be
// integers within the CBOR range; a fraction or exponent fails with
// [ErrFloatNotAllowed]. Duplicate object keys fail with
// [ErrDuplicateKey].
func (v *Value) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	parsed, err := readJSONValue(decoder)
	if err != nil {
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("canonical: trailing data after JSON value")
	}
	*v = parsed
	return nil
}

// FromJSON parses a JSON document into a Value.
func FromJSON(data []byte) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return Value{}, err
	}
	return v, nil
}

func readJSONValue(decoder *json.Decoder) (Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return Value{}, fmt.Errorf("canonical: reading JSON: %w", err)
	}

	switch token := token.(type) {
	case json.Delim:
		switch token {
		case '[':
			items := []Value{}
			for decoder.More() {
				item, err := readJSONValue(decoder)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := decoder.Token(); err != nil {
				return Value{}, fmt.Errorf("canonical: reading JSON: %w", err)
			}
			return Array(items...), nil

		case '{':
			entries := []Entry{}
			seen := make(map[string]bool)
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return Value{}, fmt.Errorf("canonical: reading JSON: %w", err)
				}
				key, ok := keyToken.(string)
				if !ok {
					return Value{}, fmt.Errorf("canonical: JSON object key is %T", keyToken)
				}
				if seen[key] {
					return Value{}, fmt.Errorf("%w %q", ErrDuplicateKey, key)
				}
				seen[key] = true
				value, err := readJSONValue(decoder)
				if err != nil {
					return Value{}, err
				}
				entries = append(entries, Entry{Key: key, Value: value})
			}
			if _, err := decoder.Token(); err != nil {
				return Value{}, fmt.Errorf("canonical: reading JSON: %w", err)
			}
			return Map(entries...).Normalize(), nil

		default:
			return Value{}, fmt.Errorf("canonical: unexpected JSON delimiter %q", token)
		}

	case json.Number:
		return parseJSONInteger(string(token))
	case string:
		return Text(token), nil
	case bool:
		return Bool(token), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("canonical: unexpected JSON token %T", token)
	}
}

var (
	maxUint64  = new(big.Int).SetUint64(^uint64(0))
	minInteger = new(big.Int).Neg(new(big.Int).Add(maxUint64, big.NewInt(1)))
)

func parseJSONInteger(text string) (Value, error) {
	if strings.ContainsAny(text, ".eE") {
		return Value{}, fmt.Errorf("%w: JSON number %s", ErrFloatNotAllowed, text)
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(n), nil
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return Uint(n), nil
	}

	wide, ok := new(big.Int).SetString(text, 10)
	if !ok || wide.Sign() >= 0 || wide.Cmp(minInteger) < 0 {
		return Value{}, fmt.Errorf("canonical: JSON integer %s is outside the CBOR integer range", text)
	}
	return NegativeInt(bigMagnitude(wide)), nil
}
