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

// Package locate implements the locate command: report where an execution
// failed without publishing anything.
package locate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombee/stepresume/internal/commands/shared"
	"github.com/tombee/stepresume/internal/config"
	"github.com/tombee/stepresume/internal/jq"
	"github.com/tombee/stepresume/internal/log"
	"github.com/tombee/stepresume/internal/output"
	"github.com/tombee/stepresume/internal/sfn"
	"github.com/tombee/stepresume/pkg/history"
)

// Service is what locate needs from Step Functions.
type Service interface {
	ExecutionHistory(ctx context.Context, executionARN string) ([]history.Event, error)
}

// NewCommand creates the locate command
func NewCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "locate <execution-arn>",
		Short: "Show the state a failed execution stopped at",
		Long: `Locate walks a failed execution's history and reports the state it
failed at together with the input that state received. For failures inside a
parallel branch the enclosing Parallel state is reported, since that is the
only resumable target.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(shared.GetConfigPath())
			if err != nil {
				return err
			}
			logger := shared.NewLogger(cfg)

			client, err := sfn.New(cmd.Context(), sfn.Options{
				Region:  shared.ResolveRegion(cfg),
				Profile: shared.ResolveProfile(cfg),
				Logger:  log.WithComponent(logger, "sfn"),
			})
			if err != nil {
				return err
			}

			return runLocate(cmd, client, args[0], query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "jq expression applied to the failed state's input")

	return cmd
}

func runLocate(cmd *cobra.Command, svc Service, executionARN, query string) error {
	events, err := svc.ExecutionHistory(cmd.Context(), executionARN)
	if err != nil {
		return err
	}

	failure, err := history.Locate(events)
	if err != nil {
		return err
	}

	input := failure.Input
	if query != "" {
		result, err := jq.NewExecutor(0).ExecuteJSON(cmd.Context(), query, failure.Input)
		if err != nil {
			return fmt.Errorf("applying --query: %w", err)
		}
		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		input = string(data)
	}

	if shared.GetJSON() {
		resp := struct {
			output.JSONResponse
			FailedState string `json:"failed_state"`
			Input       string `json:"input"`
		}{output.NewResponse("locate"), failure.StateName, input}
		return output.EmitJSON(cmd.OutOrStdout(), resp)
	}

	cmd.Printf("%s %s\n", output.RenderLabel("failed state:"), output.Bold.Render(failure.StateName))
	cmd.Printf("%s %s\n", output.RenderLabel("input:"), input)
	return nil
}
