// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package i18n

import (
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/contentid"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"en-gb", "en-GB"},
		{"EN-GB", "en-GB"},
		{"en-US", "en-US"},
		{"fr", "fr"},
		{"zh-hant-tw", "zh-Hant-TW"},
		{"de-DE-u-co-phonebk", "de-DE-u-co-phonebk"},
	}
	for _, test := range tests {
		tag, err := NormalizeTag(test.input)
		if err != nil {
			t.Errorf("NormalizeTag(%q): %v", test.input, err)
			continue
		}
		if tag.String() != test.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", test.input, tag, test.want)
		}
	}
}

func TestNormalizeTagStable(t *testing.T) {
	for _, input := range []string{"en-gb", "pt-br", "sr-latn-rs", "ar-EG"} {
		once := MustNormalizeTag(input)
		twice := MustNormalizeTag(once.String())
		if once.String() != twice.String() {
			t.Errorf("normalizing %q is not stable: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeTagInvalid(t *testing.T) {
	for _, input := range []string{"not a tag", "toolongsubtag", "en-$$"} {
		if _, err := NormalizeTag(input); err == nil {
			t.Errorf("NormalizeTag(%q) succeeded", input)
		}
	}
}

func TestIDForTag(t *testing.T) {
	tag := MustNormalizeTag("en-US")
	id, err := IDForTag(tag)
	if err != nil {
		t.Fatalf("IDForTag: %v", err)
	}
	if !strings.HasPrefix(id.String(), "i18n:v1:") {
		t.Errorf("id %q lacks i18n:v1: prefix", id)
	}

	parsed, err := ParseID(id.String())
	if err != nil {
		t.Fatalf("ParseID: %v", err)
	}
	if parsed.String() != id.String() {
		t.Errorf("ParseID = %s, want %s", parsed, id)
	}

	// The identifier is the hash of the canonical CBOR text string.
	encoded, err := canonical.ToCanonical("en-US")
	if err != nil {
		t.Fatalf("ToCanonical: %v", err)
	}
	want, err := contentid.Derive(encoded, contentid.I18nPrefix)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if id != want {
		t.Errorf("IDForTag = %s, want %s", id, want)
	}
}

func TestIDForTagCaseInsensitive(t *testing.T) {
	lower, err := IDForTag(MustNormalizeTag("en-gb"))
	if err != nil {
		t.Fatalf("IDForTag: %v", err)
	}
	upper, err := IDForTag(MustNormalizeTag("EN-GB"))
	if err != nil {
		t.Fatalf("IDForTag: %v", err)
	}
	if lower != upper {
		t.Errorf("case changed the identifier: %s vs %s", lower, upper)
	}
}

func TestIDForZeroTag(t *testing.T) {
	if _, err := IDForTag(Tag{}); err == nil {
		t.Error("IDForTag(zero) succeeded")
	}
}

func TestParseIDRejectsOtherNamespace(t *testing.T) {
	if _, err := ParseID("schema:v1:00"); !errors.Is(err, contentid.ErrInvalidPrefix) {
		t.Errorf("ParseID(schema id): err = %v, want ErrInvalidPrefix", err)
	}
}

func TestTagText(t *testing.T) {
	var tag Tag
	if err := tag.UnmarshalText([]byte("en-gb")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	text, err := tag.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "en-GB" {
		t.Errorf("MarshalText = %q, want en-GB", text)
	}

	if err := tag.UnmarshalText(nil); err != nil || !tag.IsZero() {
		t.Errorf("UnmarshalText(empty) = (%v, %v), want zero tag", tag, err)
	}
}

func TestProfileFor(t *testing.T) {
	tests := []struct {
		input     string
		language  string
		region    string
		direction Direction
	}{
		{"en-GB", "en", "GB", LeftToRight},
		{"ar-EG", "ar", "EG", RightToLeft},
		{"he", "he", "", RightToLeft},
		{"fr", "fr", "", LeftToRight},
	}
	for _, test := range tests {
		profile := ProfileFor(MustNormalizeTag(test.input))
		if profile.Language != test.language || profile.Region != test.region || profile.Direction != test.direction {
			t.Errorf("ProfileFor(%q) = %+v, want language %q region %q direction %q",
				test.input, profile, test.language, test.region, test.direction)
		}
	}
}

func TestIDForProfile(t *testing.T) {
	profile := ProfileFor(MustNormalizeTag("en-GB"))
	profile.Currency = "GBP"
	profile.DecimalSeparator = "."

	first, err := IDForProfile(profile)
	if err != nil {
		t.Fatalf("IDForProfile: %v", err)
	}
	second, err := IDForProfile(profile)
	if err != nil {
		t.Fatalf("IDForProfile: %v", err)
	}
	if first != second {
		t.Errorf("IDForProfile not deterministic: %s vs %s", first, second)
	}

	profile.Currency = "EUR"
	changed, err := IDForProfile(profile)
	if err != nil {
		t.Fatalf("IDForProfile: %v", err)
	}
	if changed == first {
		t.Error("changing the profile did not change its identifier")
	}

	if _, err := IDForProfile(MinimalProfile{}); err == nil {
		t.Error("IDForProfile(empty) succeeded")
	}
}
