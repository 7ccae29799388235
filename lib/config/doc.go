// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the flowtypes
// command.
//
// Configuration is loaded from a single file specified by either the
// FLOWTYPES_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search. Commands that need no configuration run on [Default].
//
// The file may carry development and production sections that
// override base values when [Config].Environment matches.
//
// Variable expansion is performed on store.root after loading:
// ${HOME}, ${VAR}, and ${VAR:-default} patterns are expanded.
//
// This package depends on no other flowtypes packages.
package config
