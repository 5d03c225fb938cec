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

// Package resume implements the resume command: the end-to-end recovery flow.
package resume

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombee/stepresume/internal/commands/shared"
	"github.com/tombee/stepresume/internal/config"
	"github.com/tombee/stepresume/internal/log"
	"github.com/tombee/stepresume/internal/output"
	"github.com/tombee/stepresume/internal/sfn"
	"github.com/tombee/stepresume/internal/store"
)

// NewCommand creates the resume command
func NewCommand() *cobra.Command {
	var (
		name   string
		unique bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "resume <execution-arn>",
		Short: "Publish a resumable copy of a failed execution's state machine",
		Long: `Resume locates the state a failed execution stopped at and publishes a
copy of its state machine with a GoToState choice grafted in front.

Start the new machine with {"resuming": false} to run it from the top, or
with any other input (including one without a "resuming" field) to jump
straight to the failed state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResume(cmd, args[0], name, unique, dryRun)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the new state machine (default: <original>-with-GoToState)")
	cmd.Flags().BoolVar(&unique, "unique", false, "Append a random suffix to the new machine's name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the grafted definition without publishing")

	return cmd
}

func runResume(cmd *cobra.Command, executionARN, name string, unique, dryRun bool) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return err
	}
	logger := shared.NewLogger(cfg)
	ctx := cmd.Context()

	client, err := sfn.New(ctx, sfn.Options{
		Region:  shared.ResolveRegion(cfg),
		Profile: shared.ResolveProfile(cfg),
		Logger:  log.WithComponent(logger, "sfn"),
	})
	if err != nil {
		return err
	}

	result, err := Recover(ctx, client, Options{
		ExecutionARN: executionARN,
		Name:         name,
		Unique:       unique,
		DryRun:       dryRun,
	}, logger)
	if err != nil {
		return err
	}

	if !dryRun && !cfg.Store.Disabled {
		if err := recordRecovery(cmd, cfg, result); err != nil {
			// The machine was published; a broken audit log must not fail
			// the recovery.
			logger.Warn("could not record recovery", log.Error(err))
		}
	}

	return emitResult(cmd, result, dryRun)
}

func recordRecovery(cmd *cobra.Command, cfg *config.Config, result *Result) error {
	path := cfg.Store.Path
	if path == "" {
		var err error
		path, err = config.DefaultStorePath()
		if err != nil {
			return err
		}
	}

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Record(cmd.Context(), store.Recovery{
		ExecutionARN:  result.ExecutionARN,
		FailedState:   result.FailedState,
		NewMachineARN: result.NewMachineARN,
	})
}

func emitResult(cmd *cobra.Command, result *Result, dryRun bool) error {
	if shared.GetJSON() {
		resp := struct {
			output.JSONResponse
			*Result
		}{output.NewResponse("resume"), result}
		return output.EmitJSON(cmd.OutOrStdout(), resp)
	}

	if dryRun {
		cmd.Printf("%s %s\n", output.RenderLabel("failed state:"), output.Bold.Render(result.FailedState))
		cmd.Printf("%s %s\n", output.RenderLabel("input:"), result.FailedInput)
		cmd.Println(result.Definition)
		return nil
	}

	cmd.Println(output.RenderOK(fmt.Sprintf("created state machine %s", result.NewMachineARN)))
	cmd.Printf("%s %s\n", output.RenderLabel("failed state:"), output.Bold.Render(result.FailedState))
	cmd.Printf("%s %s\n", output.RenderLabel("input:"), result.FailedInput)
	if !shared.GetQuiet() {
		cmd.Println(output.RenderWarn(`inputs without "resuming": false will start at the failed state`))
	}
	return nil
}
