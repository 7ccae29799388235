// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package i18n

import (
	"fmt"

	"github.com/bureau-foundation/flowtypes/lib/contentid"
)

// Direction is the direction text is laid out in.
type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// ISO 15924 codes of scripts written right to left.
var rightToLeftScripts = map[string]bool{
	"Adlm": true,
	"Arab": true,
	"Hebr": true,
	"Mand": true,
	"Nkoo": true,
	"Rohg": true,
	"Samr": true,
	"Syrc": true,
	"Thaa": true,
}

// MinimalProfile is the locale information needed during setup, before
// full message catalogs are available.
type MinimalProfile struct {
	Language         string    `json:"language"`
	Region           string    `json:"region,omitempty"`
	Script           string    `json:"script,omitempty"`
	Direction        Direction `json:"direction"`
	Calendar         string    `json:"calendar"`
	Currency         string    `json:"currency"`
	DecimalSeparator string    `json:"decimal_separator"`
	Timezone         string    `json:"timezone,omitempty"`
}

// ProfileFor fills the tag-derived fields of a profile. Calendar,
// currency, separator, and timezone are left for the caller.
func ProfileFor(tag Tag) MinimalProfile {
	profile := MinimalProfile{
		Language:  tag.Language(),
		Script:    tag.Script(),
		Direction: tag.Direction(),
		Calendar:  "gregory",
	}
	if region, explicit := tag.Region(); explicit {
		profile.Region = region
	}
	return profile
}

// IDForProfile derives the "i18n:v1:" identifier of a profile from its
// canonical CBOR encoding.
func IDForProfile(profile MinimalProfile) (contentid.ID, error) {
	if profile.Language == "" {
		return contentid.ID{}, fmt.Errorf("i18n: profile has no language")
	}
	return contentid.DeriveValue(profile, contentid.I18nPrefix)
}
