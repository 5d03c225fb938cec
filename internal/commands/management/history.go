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

// Package management implements commands over the local recovery log.
package management

import (
	"github.com/spf13/cobra"

	"github.com/tombee/stepresume/internal/commands/shared"
	"github.com/tombee/stepresume/internal/config"
	"github.com/tombee/stepresume/internal/output"
	"github.com/tombee/stepresume/internal/store"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recoveries recorded by this machine",
		Long:  `Display the local log of recoveries: which executions were recovered, at which state, and into which new state machine.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return err
	}

	path := cfg.Store.Path
	if path == "" {
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

	recs, err := s.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if shared.GetJSON() {
		resp := struct {
			output.JSONResponse
			Recoveries []store.Recovery `json:"recoveries"`
		}{output.NewResponse("history"), recs}
		return output.EmitJSON(cmd.OutOrStdout(), resp)
	}

	if len(recs) == 0 {
		cmd.Println("no recoveries recorded")
		return nil
	}

	for _, rec := range recs {
		cmd.Printf("%s  %s\n", output.RenderLabel(rec.CreatedAt.Format("2006-01-02 15:04")), output.Bold.Render(rec.FailedState))
		cmd.Printf("    %s %s\n", output.RenderLabel("execution:"), rec.ExecutionARN)
		cmd.Printf("    %s %s\n", output.RenderLabel("new machine:"), rec.NewMachineARN)
	}
	return nil
}
