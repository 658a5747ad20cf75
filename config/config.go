// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config defines formatter options and finds them on disk.
//
// Options come from three places, each overriding the last: built-in
// defaults, the nearest gobo.json above the file being formatted, and
// GOBO_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

// FileName is the name of a configuration file.
const FileName = "gobo.json"

// BraceStyle is where an opening brace goes relative to the statement header
// it belongs to.
type BraceStyle string

const (
	SameLine BraceStyle = "sameLine" // if (x) {
	NewLine  BraceStyle = "newLine"  // if (x)\n{
)

// Options controls how source is formatted.
type Options struct {
	UseTabs  bool `json:"useTabs" env:"GOBO_USE_TABS"`
	TabWidth int  `json:"tabWidth" env:"GOBO_TAB_WIDTH"`
	// The column budget lines are fitted into.
	Width int `json:"width" env:"GOBO_WIDTH"`

	// If set, `//x` comments get a space after the slashes and trailing
	// whitespace is removed from comments.
	FormatComments bool `json:"formatComments"`
	// If set, every result is checked for comment coverage, idempotence and
	// tree preservation before it is returned.
	ValidateOutput bool `json:"validateOutput" env:"GOBO_VALIDATE"`

	BraceStyle BraceStyle `json:"braceStyle" env:"GOBO_BRACE_STYLE"`

	// If set, type annotations are left out of the output.
	RemoveSyntaxExtensions bool `json:"removeSyntaxExtensions"`
	StripLeadingBlankLines bool `json:"stripLeadingBlankLines"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		TabWidth:               4,
		Width:                  80,
		FormatComments:         true,
		BraceStyle:             SameLine,
		StripLeadingBlankLines: true,
	}
}

// Validate checks option values, returning a [*reporter.UsageError] for the
// first bad one.
func (o Options) Validate() error {
	switch {
	case o.TabWidth < 1:
		return reporter.Usagef("tab width must be at least 1, got %d", o.TabWidth)
	case o.Width < 1:
		return reporter.Usagef("width must be at least 1, got %d", o.Width)
	case o.BraceStyle != SameLine && o.BraceStyle != NewLine:
		return reporter.Usagef("unknown brace style %q (want %q or %q)", o.BraceStyle, SameLine, NewLine)
	}
	return nil
}

// Find returns the path of the configuration file that applies to path: the
// first gobo.json found in the directory of path or any of its ancestors.
// The second result is false if there is none.
func Find(path string) (string, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads a configuration file. Fields the file does not set keep their
// values from base.
//
// A file that cannot be read or decoded yields a [*reporter.ConfigParseError].
func Load(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, &reporter.ConfigParseError{Path: path, Err: err}
	}
	opts := base
	if err := json.Unmarshal(data, &opts); err != nil {
		return base, &reporter.ConfigParseError{Path: path, Err: err}
	}
	return opts, nil
}

// ApplyEnv overrides options with any GOBO_* environment variables that are
// set.
func ApplyEnv(opts *Options) error {
	if err := env.Parse(opts); err != nil {
		return reporter.Usagef("invalid environment: %v", err)
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file into the environment of the
// process, without overriding variables that are already set.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return reporter.Usagef("could not load environment from %s: %v", path, err)
	}
	return nil
}

// Resolve returns the options for formatting path, starting from base: the
// nearest configuration file is applied, then the environment.
//
// A configuration file that cannot be parsed is logged as a warning and
// skipped. The result is validated.
func Resolve(path string, base Options, log logrus.FieldLogger) (Options, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	opts := base
	if file, ok := Find(path); ok {
		loaded, err := Load(file, base)
		var parseErr *reporter.ConfigParseError
		switch {
		case errors.As(err, &parseErr):
			log.WithField("path", file).WithError(parseErr.Err).Warn("invalid config, using defaults")
		case err != nil:
			return base, err
		default:
			log.WithField("path", file).Debug("loaded config")
			opts = loaded
		}
	}

	if err := ApplyEnv(&opts); err != nil {
		return base, err
	}
	if err := opts.Validate(); err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}
