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

package sfn

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"

	"github.com/tombee/stepresume/internal/log"
	stepresumeerrors "github.com/tombee/stepresume/pkg/errors"
	"github.com/tombee/stepresume/pkg/statemachine"
)

// StateMachine is a fetched state machine: its identity plus parsed definition.
type StateMachine struct {
	ARN        string
	Name       string
	RoleARN    string
	Definition *statemachine.Definition
}

// StateMachine fetches and parses the definition of the given state machine.
func (c *Client) StateMachine(ctx context.Context, machineARN string) (*StateMachine, error) {
	out, err := c.api.DescribeStateMachine(ctx, &sfn.DescribeStateMachineInput{
		StateMachineArn: aws.String(machineARN),
	})
	if err != nil {
		return nil, wrapService("DescribeStateMachine", err)
	}

	def, err := statemachine.Parse([]byte(aws.ToString(out.Definition)))
	if err != nil {
		return nil, stepresumeerrors.Wrapf(err, "state machine %s", machineARN)
	}

	return &StateMachine{
		ARN:        aws.ToString(out.StateMachineArn),
		Name:       aws.ToString(out.Name),
		RoleARN:    aws.ToString(out.RoleArn),
		Definition: def,
	}, nil
}

// CreateStateMachine publishes a definition as a new state machine under the
// given name, executing with the given role. Returns the new machine's ARN.
func (c *Client) CreateStateMachine(ctx context.Context, name string, def *statemachine.Definition, roleARN string) (string, error) {
	data, err := def.Serialize()
	if err != nil {
		return "", err
	}

	out, err := c.api.CreateStateMachine(ctx, &sfn.CreateStateMachineInput{
		Name:       aws.String(name),
		Definition: aws.String(string(data)),
		RoleArn:    aws.String(roleARN),
	})
	if err != nil {
		return "", wrapService("CreateStateMachine", err)
	}

	arn := aws.ToString(out.StateMachineArn)
	c.logger.Debug("created state machine",
		slog.String(log.StateMachineKey, arn),
		slog.String("name", name))
	return arn, nil
}
