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

package shared

import (
	"log/slog"
	"os"

	"github.com/tombee/stepresume/internal/config"
	"github.com/tombee/stepresume/internal/log"
)

// NewLogger builds the logger for a command invocation. Precedence:
// --verbose/--quiet flags, then environment variables, then the config file.
func NewLogger(cfg *config.Config) *slog.Logger {
	logCfg := log.FromEnv()

	if cfg != nil {
		envLevelSet := os.Getenv("STEPRESUME_DEBUG") != "" ||
			os.Getenv("STEPRESUME_LOG_LEVEL") != "" ||
			os.Getenv("LOG_LEVEL") != ""
		if !envLevelSet && cfg.Log.Level != "" {
			logCfg.Level = cfg.Log.Level
		}
		if os.Getenv("LOG_FORMAT") == "" && cfg.Log.Format != "" {
			logCfg.Format = log.Format(cfg.Log.Format)
		}
	}

	if GetVerbose() {
		logCfg.Level = "debug"
	}
	if GetQuiet() {
		logCfg.Level = "error"
	}

	return log.New(logCfg)
}

// ResolveRegion returns the AWS region for this invocation: the --region flag
// when set, otherwise the config file value, otherwise empty for SDK resolution.
func ResolveRegion(cfg *config.Config) string {
	if r := GetRegion(); r != "" {
		return r
	}
	if cfg != nil {
		return cfg.AWS.Region
	}
	return ""
}

// ResolveProfile returns the AWS profile for this invocation, same precedence
// as ResolveRegion.
func ResolveProfile(cfg *config.Config) string {
	if p := GetProfile(); p != "" {
		return p
	}
	if cfg != nil {
		return cfg.AWS.Profile
	}
	return ""
}
