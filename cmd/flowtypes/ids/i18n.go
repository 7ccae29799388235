// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/flowtypes/cmd/flowtypes/cli"
	"github.com/bureau-foundation/flowtypes/lib/i18n"
)

type i18nParams struct {
	cli.JSONOutput
	Profile bool `flag:"profile" desc:"identify the minimal locale profile instead of the bare tag"`
}

type localeResult struct {
	Tag     string               `json:"tag"`
	ID      string               `json:"id"`
	Profile *i18n.MinimalProfile `json:"profile,omitempty"`
}

// I18nCommand returns the "i18n" command group.
func I18nCommand() *cli.Command {
	var params i18nParams

	return &cli.Command{
		Name:    "i18n",
		Summary: "Locale identifiers",
		Subcommands: []*cli.Command{
			{
				Name:    "id",
				Summary: "Normalize a BCP 47 tag and print its i18n identifier",
				Description: `Normalize a BCP 47 language tag and print the "i18n:v1:" identifier
of its canonical CBOR encoding. Tags that normalize to the same form
("EN-us", "en-US") share an identifier.`,
				Usage:  "flowtypes i18n id [--profile] [--json] <tag>",
				Params: func() any { return &params },
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					if len(args) != 1 {
						return fmt.Errorf("i18n id takes exactly one tag, got %d arguments", len(args))
					}
					return localeID(args[0], &params, os.Stdout)
				},
			},
		},
	}
}

func localeID(input string, params *i18nParams, w io.Writer) error {
	tag, err := i18n.NormalizeTag(input)
	if err != nil {
		return err
	}
	result := localeResult{Tag: tag.String()}
	if params.Profile {
		profile := i18n.ProfileFor(tag)
		id, err := i18n.IDForProfile(profile)
		if err != nil {
			return err
		}
		result.ID = id.String()
		result.Profile = &profile
	} else {
		id, err := i18n.IDForTag(tag)
		if err != nil {
			return err
		}
		result.ID = id.String()
	}

	if done, err := params.EmitJSON(w, result); done {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\n", result.Tag, result.ID)
	return err
}
