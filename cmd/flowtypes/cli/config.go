// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/bureau-foundation/flowtypes/lib/config"
)

// ConfigParams is embedded in the params of commands that read
// configuration.
type ConfigParams struct {
	ConfigPath string `flag:"config" desc:"path to flowtypes.yaml (default: $FLOWTYPES_CONFIG)"`
}

// LoadConfig returns the configuration named by --config, else by
// FLOWTYPES_CONFIG. With neither set, the defaults are used. The
// result is validated.
func (p *ConfigParams) LoadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.ConfigPath != "":
		cfg, err = config.LoadFile(p.ConfigPath)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
