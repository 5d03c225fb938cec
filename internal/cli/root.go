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

// Package cli assembles the stepresume command tree.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/tombee/stepresume/internal/commands/shared"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command for stepresume
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stepresume",
		Short: "stepresume - resume failed Step Functions executions",
		Long: `stepresume recovers failed AWS Step Functions executions. It locates
the exact state an execution failed at, then publishes a copy of the state
machine whose entry point can either run from the top or jump straight to
the failed state, selected by a "resuming" input flag.

Run 'stepresume locate <execution-arn>' to inspect a failure.
Run 'stepresume resume <execution-arn>' to publish a resumable copy.`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	// Add global flags
	shared.AddGlobalFlags(cmd.PersistentFlags())

	return cmd
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
