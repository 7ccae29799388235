// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "FLOWTYPES_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local authoring and testing.
	Development Environment = "development"
	// Production is for build and publishing pipelines.
	Production Environment = "production"
)

// Config is the flowtypes configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Store configures the on-disk document store.
	Store StoreConfig `yaml:"store"`

	// IDs configures the identifiers assigned to stored documents.
	IDs IDsConfig `yaml:"ids"`

	// Log configures command logging.
	Log LogConfig `yaml:"log"`

	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Store *StoreConfig `yaml:"store,omitempty"`
	Log   *LogConfig   `yaml:"log,omitempty"`
}

// StoreConfig configures the document store.
type StoreConfig struct {
	// Root is the directory documents are stored under.
	Root string `yaml:"root"`

	// Compression applied to new documents: none, lz4, or zstd.
	// Default: zstd
	Compression string `yaml:"compression"`
}

// IDsConfig configures content identifier prefixes.
type IDsConfig struct {
	// Namespace of identifiers assigned by "store put".
	// Default: doc
	Namespace string `yaml:"namespace"`

	// Version of identifiers assigned by "store put".
	// Default: 1
	Version uint `yaml:"version"`

	// SchemaNamespace of schema identifiers.
	// Default: schema
	SchemaNamespace string `yaml:"schema_namespace"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// CompressionNames lists the accepted store.compression values.
var CompressionNames = []string{"none", "lz4", "zstd"}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Environment: Development,
		Store: StoreConfig{
			Root:        filepath.Join(homeDir, ".cache", "flowtypes", "store"),
			Compression: "zstd",
		},
		IDs: IDsConfig{
			Namespace:       "doc",
			Version:         1,
			SchemaNamespace: "schema",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load loads configuration from the FLOWTYPES_CONFIG environment
// variable. If it is not set, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your flowtypes.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values not
// present in the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Store != nil {
		if overrides.Store.Root != "" {
			c.Store.Root = overrides.Store.Root
		}
		if overrides.Store.Compression != "" {
			c.Store.Compression = overrides.Store.Compression
		}
	}
	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Store.Root = expandVars(c.Store.Root, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Provided
// vars take precedence over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.Store.Root == "" {
		errs = append(errs, errors.New("store.root is required"))
	}
	if !slices.Contains(CompressionNames, c.Store.Compression) {
		errs = append(errs, fmt.Errorf("store.compression must be one of: %v", CompressionNames))
	}
	if c.IDs.Namespace == "" {
		errs = append(errs, errors.New("ids.namespace is required"))
	}
	if c.IDs.Version == 0 {
		errs = append(errs, errors.New("ids.version must be at least 1"))
	}
	if c.IDs.SchemaNamespace == "" {
		errs = append(errs, errors.New("ids.schema_namespace is required"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
