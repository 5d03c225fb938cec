// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the stepresume configuration file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	stepresumeerrors "github.com/tombee/stepresume/pkg/errors"
)

// Config represents the complete stepresume configuration.
type Config struct {
	// AWS holds defaults for talking to Step Functions. Both values can be
	// overridden per invocation with --region / --profile.
	AWS AWSConfig `yaml:"aws"`

	// Store configures the local recovery history database.
	Store StoreConfig `yaml:"store"`

	// Log configures logging defaults. Environment variables still win.
	Log LogConfig `yaml:"log"`
}

// AWSConfig holds AWS client defaults.
type AWSConfig struct {
	// Region is the AWS region, e.g. "us-east-1". Empty means the SDK's
	// default resolution (env, shared config, instance metadata).
	Region string `yaml:"region,omitempty"`

	// Profile is the shared-config profile name. Empty means the default
	// credential chain.
	Profile string `yaml:"profile,omitempty"`
}

// StoreConfig configures the recovery history database.
type StoreConfig struct {
	// Path is the SQLite database file. Empty means
	// ~/.config/stepresume/stepresume.db.
	Path string `yaml:"path,omitempty"`

	// Disabled turns off recovery history recording entirely.
	Disabled bool `yaml:"disabled,omitempty"`
}

// LogConfig configures logging defaults.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration from path. If path is empty, the default XDG
// location is used; a missing file is not an error and yields defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, &stepresumeerrors.ConfigError{Reason: "resolving config path", Cause: err}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, &stepresumeerrors.ConfigError{Reason: "reading " + path, Cause: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &stepresumeerrors.ConfigError{Reason: "parsing " + path, Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &stepresumeerrors.ConfigError{
			Key:    "log.level",
			Reason: "must be one of debug, info, warn, error",
		}
	}

	switch c.Log.Format {
	case "", "json", "text":
	default:
		return &stepresumeerrors.ConfigError{
			Key:    "log.format",
			Reason: "must be json or text",
		}
	}

	return nil
}
