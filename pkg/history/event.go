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

// Package history models Step Functions execution histories and locates the
// state at which a failed execution stopped.
package history

import "time"

// Event types the locator cares about. Execution histories contain many more
// types; all others are skipped during the walk.
const (
	TypeExecutionFailed      = "ExecutionFailed"
	TypeTaskStateEntered     = "TaskStateEntered"
	TypeParallelStateEntered = "ParallelStateEntered"
	TypeParallelStateFailed  = "ParallelStateFailed"
)

// Event is one entry in an execution's history.
//
// Event ids are assigned chronologically starting at 1; PreviousEventID links
// each event to its chronological predecessor, with 0 meaning "start of the
// execution". Histories handed to this package are ordered most-recent-first,
// so the event with id k sits at index len(events)-k.
type Event struct {
	// ID is the event's chronological id within the execution
	ID int64 `json:"id"`

	// Type is the event type, e.g. TaskStateEntered
	Type string `json:"type"`

	// PreviousEventID is the id of the chronologically preceding event;
	// 0 means this event starts the execution
	PreviousEventID int64 `json:"previousEventId"`

	// Timestamp is when the event occurred
	Timestamp time.Time `json:"timestamp,omitempty"`

	// StateEnteredEventDetails is set only on *StateEntered events
	StateEnteredEventDetails *StateEnteredEventDetails `json:"stateEnteredEventDetails,omitempty"`

	// ExecutionFailedEventDetails is set only on the ExecutionFailed event
	ExecutionFailedEventDetails *ExecutionFailedEventDetails `json:"executionFailedEventDetails,omitempty"`
}

// StateEnteredEventDetails carries the identity and input of an entered state.
type StateEnteredEventDetails struct {
	// Name is the state's name in the state machine definition
	Name string `json:"name"`

	// Input is the raw JSON input the state received
	Input string `json:"input"`
}

// ExecutionFailedEventDetails carries the error reported when an execution fails.
type ExecutionFailedEventDetails struct {
	// Error is the error code, e.g. "States.Runtime" or "States.TaskFailed"
	Error string `json:"error"`

	// Cause is the free-form failure description
	Cause string `json:"cause"`
}

// Failure identifies the state at which a failed execution stopped.
type Failure struct {
	// StateName is the name of the failed state. For failures inside a
	// parallel branch this is the enclosing Parallel state, since only the
	// Parallel state itself is addressable in the definition.
	StateName string `json:"state_name"`

	// Input is the raw JSON input the failed state received
	Input string `json:"input"`
}
