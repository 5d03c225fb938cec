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

// Package sfn wraps the AWS Step Functions API for the recovery flow. It
// assembles complete execution histories, fetches state machine definitions,
// and publishes grafted copies; all algorithmic work lives in pkg/history and
// pkg/statemachine.
package sfn

import (
	"context"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// API is the subset of the Step Functions client this tool calls.
// Commands depend on this interface so tests can substitute fakes.
type API interface {
	GetExecutionHistory(ctx context.Context, params *sfn.GetExecutionHistoryInput, optFns ...func(*sfn.Options)) (*sfn.GetExecutionHistoryOutput, error)
	DescribeStateMachine(ctx context.Context, params *sfn.DescribeStateMachineInput, optFns ...func(*sfn.Options)) (*sfn.DescribeStateMachineOutput, error)
	CreateStateMachine(ctx context.Context, params *sfn.CreateStateMachineInput, optFns ...func(*sfn.Options)) (*sfn.CreateStateMachineOutput, error)
}

// Options configures client construction.
type Options struct {
	// Region overrides the SDK's resolved region when non-empty.
	Region string

	// Profile selects a shared-config profile when non-empty.
	Profile string

	// Logger receives debug logs for each API call. Nil disables logging.
	Logger *slog.Logger
}

// Client talks to Step Functions on behalf of the recovery commands.
type Client struct {
	api    API
	logger *slog.Logger
}

// New loads AWS configuration from the default chain, validates the resolved
// credentials with an STS GetCallerIdentity call, and returns a ready client.
func New(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, wrapService("LoadDefaultConfig", err)
	}

	// Fail fast on dead credentials rather than partway through a recovery.
	preflightCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stsClient := sts.NewFromConfig(awsCfg)
	if _, err := stsClient.GetCallerIdentity(preflightCtx, &sts.GetCallerIdentityInput{}); err != nil {
		return nil, wrapService("GetCallerIdentity", err)
	}

	return NewWithAPI(sfn.NewFromConfig(awsCfg), opts.Logger), nil
}

// NewWithAPI wraps an existing API implementation. Used by tests and by
// callers that manage their own AWS configuration.
func NewWithAPI(api API, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{api: api, logger: logger}
}
