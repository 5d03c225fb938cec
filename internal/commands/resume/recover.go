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

package resume

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tombee/stepresume/internal/log"
	"github.com/tombee/stepresume/internal/sfn"
	"github.com/tombee/stepresume/pkg/history"
	"github.com/tombee/stepresume/pkg/statemachine"
)

// nameSuffix is appended to the original machine name for the grafted copy.
const nameSuffix = "-with-GoToState"

// Service is what the recovery flow needs from Step Functions.
type Service interface {
	ExecutionHistory(ctx context.Context, executionARN string) ([]history.Event, error)
	StateMachine(ctx context.Context, machineARN string) (*sfn.StateMachine, error)
	CreateStateMachine(ctx context.Context, name string, def *statemachine.Definition, roleARN string) (string, error)
}

// Options controls one recovery run.
type Options struct {
	// ExecutionARN is the failed execution to recover
	ExecutionARN string

	// Name overrides the derived name of the new state machine
	Name string

	// Unique appends a random suffix to the new machine's name so repeated
	// recoveries of the same machine don't collide
	Unique bool

	// DryRun skips publishing; the grafted definition is returned instead
	DryRun bool
}

// Result describes a completed (or dry-run) recovery.
type Result struct {
	ExecutionARN  string `json:"execution_arn"`
	MachineARN    string `json:"state_machine_arn"`
	FailedState   string `json:"failed_state"`
	FailedInput   string `json:"failed_input"`
	NewName       string `json:"new_name"`
	NewMachineARN string `json:"new_machine_arn,omitempty"`

	// Definition is the serialized grafted definition, set on dry runs
	Definition string `json:"definition,omitempty"`
}

// Recover runs the full flow: fetch the history, locate the failed state,
// graft a GoToState entry into the machine's definition, and publish the
// result as a new machine (unless DryRun).
func Recover(ctx context.Context, svc Service, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	machineARN, err := statemachine.MachineARNFromExecutionARN(opts.ExecutionARN)
	if err != nil {
		return nil, err
	}

	events, err := svc.ExecutionHistory(ctx, opts.ExecutionARN)
	if err != nil {
		return nil, err
	}

	failure, err := history.Locate(events)
	if err != nil {
		return nil, err
	}
	logger.Debug("located failed state",
		slog.String(log.StateKey, failure.StateName),
		slog.String(log.ExecutionKey, opts.ExecutionARN))

	machine, err := svc.StateMachine(ctx, machineARN)
	if err != nil {
		return nil, err
	}

	grafted, err := statemachine.Graft(machine.Definition, failure.StateName)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = machine.Name + nameSuffix
	}
	if opts.Unique {
		name = fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])
	}

	result := &Result{
		ExecutionARN: opts.ExecutionARN,
		MachineARN:   machine.ARN,
		FailedState:  failure.StateName,
		FailedInput:  failure.Input,
		NewName:      name,
	}

	if opts.DryRun {
		data, err := grafted.Serialize()
		if err != nil {
			return nil, err
		}
		result.Definition = string(data)
		return result, nil
	}

	newARN, err := svc.CreateStateMachine(ctx, name, grafted, machine.RoleARN)
	if err != nil {
		return nil, err
	}
	result.NewMachineARN = newARN

	return result, nil
}
