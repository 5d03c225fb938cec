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

package errors

import (
	"fmt"
)

// NotFailedExecutionError indicates the supplied execution history does not
// describe a failed execution: its most recent event is not ExecutionFailed.
// The caller asked to recover an execution that has nothing to recover from.
type NotFailedExecutionError struct {
	// ExecutionARN identifies the execution whose history was inspected
	ExecutionARN string

	// EventType is the type of the most recent event actually found
	EventType string
}

// Error implements the error interface.
func (e *NotFailedExecutionError) Error() string {
	msg := "execution did not fail"
	if e.EventType != "" {
		msg = fmt.Sprintf("%s: most recent event is %s, not ExecutionFailed", msg, e.EventType)
	}
	if e.ExecutionARN != "" {
		msg = fmt.Sprintf("%s (execution %s)", msg, e.ExecutionARN)
	}
	return msg
}

// RuntimeErrorDecodeError indicates the States.Runtime cause message could not
// be decoded into a usable event id. The cause format is owned by the service
// and may change shape; this error carries the raw cause for diagnosis.
type RuntimeErrorDecodeError struct {
	// Cause is the raw cause string that failed to decode
	Cause string

	// Reason explains which part of the decode failed
	Reason string
}

// Error implements the error interface.
func (e *RuntimeErrorDecodeError) Error() string {
	return fmt.Sprintf("cannot decode States.Runtime cause: %s", e.Reason)
}

// NoFailedStateFoundError indicates the backward walk over the event history
// exhausted the predecessor chain without finding a recognizable failed state.
// This usually means the execution failed in a state type the locator has no
// case for.
type NoFailedStateFoundError struct {
	// ExecutionARN identifies the execution whose history was walked
	ExecutionARN string

	// EventsWalked is how many events the walk visited before giving up
	EventsWalked int
}

// Error implements the error interface.
func (e *NoFailedStateFoundError) Error() string {
	msg := "no failed state found in execution history"
	if e.EventsWalked > 0 {
		msg = fmt.Sprintf("%s (walked %d events)", msg, e.EventsWalked)
	}
	if e.ExecutionARN != "" {
		msg = fmt.Sprintf("%s (execution %s)", msg, e.ExecutionARN)
	}
	return msg
}

// NameCollisionError indicates the state name reserved for the grafted entry
// state already exists in the target definition. Overwriting it would silently
// discard an existing state, so the graft refuses instead.
type NameCollisionError struct {
	// StateName is the reserved name that collided
	StateName string
}

// Error implements the error interface.
func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("state machine already contains a state named %q", e.StateName)
}

// ServiceError represents a failure reported by the Step Functions service or
// the surrounding AWS machinery (credentials, transport).
type ServiceError struct {
	// Operation is the API operation that failed (e.g., "GetExecutionHistory")
	Operation string

	// Code is the AWS error code, when one was returned
	Code string

	// Message is the human-readable error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Operation)
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Code)
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "region", "store.path")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
