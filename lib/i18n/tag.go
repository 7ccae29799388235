// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package i18n

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/bureau-foundation/flowtypes/lib/contentid"
)

// Tag is a normalized BCP 47 locale tag.
type Tag struct {
	tag  language.Tag
	text string
}

// NormalizeTag parses input as a BCP 47 tag and returns it in
// canonical form.
func NormalizeTag(input string) (Tag, error) {
	parsed, err := language.Parse(input)
	if err != nil {
		return Tag{}, fmt.Errorf("invalid locale tag %q: %w", input, err)
	}
	return Tag{tag: parsed, text: parsed.String()}, nil
}

// MustNormalizeTag is like [NormalizeTag] but panics on error.
func MustNormalizeTag(input string) Tag {
	tag, err := NormalizeTag(input)
	if err != nil {
		panic(fmt.Sprintf("i18n.MustNormalizeTag(%q): %v", input, err))
	}
	return tag
}

// String returns the canonical tag text.
func (t Tag) String() string { return t.text }

// IsZero reports whether the tag is the zero value.
func (t Tag) IsZero() bool { return t.text == "" }

// Language returns the primary language subtag, e.g. "en".
func (t Tag) Language() string {
	base, _ := t.tag.Base()
	return base.String()
}

// Region returns the region subtag and whether it was explicit in the
// tag.
func (t Tag) Region() (string, bool) {
	region, confidence := t.tag.Region()
	return region.String(), confidence == language.Exact
}

// Script returns the script subtag, inferred when the tag does not
// name one.
func (t Tag) Script() string {
	script, _ := t.tag.Script()
	return script.String()
}

// Direction returns the text direction implied by the tag's script.
func (t Tag) Direction() Direction {
	if rightToLeftScripts[t.Script()] {
		return RightToLeft
	}
	return LeftToRight
}

// MarshalText implements [encoding.TextMarshaler].
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.text), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler], normalizing
// the input. Empty input yields the zero value.
func (t *Tag) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*t = Tag{}
		return nil
	}
	parsed, err := NormalizeTag(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IDForTag derives the "i18n:v1:" identifier of a tag.
func IDForTag(tag Tag) (contentid.ID, error) {
	if tag.IsZero() {
		return contentid.ID{}, fmt.Errorf("i18n: cannot derive identifier of an empty tag")
	}
	return contentid.DeriveValue(tag.text, contentid.I18nPrefix)
}

// ParseID parses an "i18n:v1:" identifier.
func ParseID(text string) (contentid.ID, error) {
	return contentid.Parse(text, contentid.I18nPrefix)
}
