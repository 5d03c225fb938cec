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

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stepresumeerrors "github.com/tombee/stepresume/pkg/errors"
)

// entered builds a *StateEntered event.
func entered(id, prev int64, eventType, name, input string) Event {
	return Event{
		ID:              id,
		Type:            eventType,
		PreviousEventID: prev,
		StateEnteredEventDetails: &StateEnteredEventDetails{
			Name:  name,
			Input: input,
		},
	}
}

// failed builds the terminal ExecutionFailed event.
func failed(id, prev int64, errCode, cause string) Event {
	return Event{
		ID:              id,
		Type:            TypeExecutionFailed,
		PreviousEventID: prev,
		ExecutionFailedEventDetails: &ExecutionFailedEventDetails{
			Error: errCode,
			Cause: cause,
		},
	}
}

func TestLocateFlatTaskFailure(t *testing.T) {
	// Most-recent-first history of a plain task failure.
	events := []Event{
		failed(4, 3, "States.TaskFailed", "task crashed"),
		entered(3, 2, TypeTaskStateEntered, "Validate", `{"x":1}`),
		entered(2, 1, TypeTaskStateEntered, "Fetch", `{}`),
		entered(1, 0, TypeTaskStateEntered, "Start", `{}`),
	}

	failure, err := Locate(events)
	require.NoError(t, err)
	assert.Equal(t, "Validate", failure.StateName)
	assert.Equal(t, `{"x":1}`, failure.Input)
}

func TestLocateParallelBranchFailure(t *testing.T) {
	// A task inside a parallel branch failed. The locator must skip every
	// inner entered event and report the enclosing Parallel state.
	events := []Event{
		failed(9, 8, "States.TaskFailed", "branch crashed"),
		{ID: 8, Type: TypeParallelStateFailed, PreviousEventID: 7},
		entered(7, 6, TypeTaskStateEntered, "InnerB", `{"b":1}`),
		entered(6, 5, TypeTaskStateEntered, "InnerA", `{"a":1}`),
		entered(5, 4, TypeParallelStateEntered, "FanOut", `{"fan":true}`),
		entered(4, 3, TypeTaskStateEntered, "Prep", `{}`),
		{ID: 3, Type: "TaskStateExited", PreviousEventID: 2},
		entered(2, 1, TypeTaskStateEntered, "Init", `{}`),
		{ID: 1, Type: "ExecutionStarted", PreviousEventID: 0},
	}

	failure, err := Locate(events)
	require.NoError(t, err)
	assert.Equal(t, "FanOut", failure.StateName)
	assert.Equal(t, `{"fan":true}`, failure.Input)
}

func TestLocateSkipsIrrelevantEventTypes(t *testing.T) {
	// Exited/scheduled events between the failure and the task entry must
	// not terminate the walk.
	events := []Event{
		failed(6, 5, "States.TaskFailed", "boom"),
		{ID: 5, Type: "TaskFailed", PreviousEventID: 4},
		{ID: 4, Type: "TaskStarted", PreviousEventID: 3},
		{ID: 3, Type: "TaskScheduled", PreviousEventID: 2},
		entered(2, 1, TypeTaskStateEntered, "DoWork", `{"n":2}`),
		{ID: 1, Type: "ExecutionStarted", PreviousEventID: 0},
	}

	failure, err := Locate(events)
	require.NoError(t, err)
	assert.Equal(t, "DoWork", failure.StateName)
}

func TestLocateErrors(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		check  func(t *testing.T, err error)
	}{
		{
			name:   "empty history",
			events: nil,
			check: func(t *testing.T, err error) {
				assert.True(t, stepresumeerrors.IsNotFailedExecution(err))
			},
		},
		{
			name: "execution did not fail",
			events: []Event{
				entered(2, 1, TypeTaskStateEntered, "Done", `{}`),
				{ID: 1, Type: "ExecutionStarted", PreviousEventID: 0},
			},
			check: func(t *testing.T, err error) {
				var notFailed *stepresumeerrors.NotFailedExecutionError
				require.ErrorAs(t, err, &notFailed)
				assert.Equal(t, TypeTaskStateEntered, notFailed.EventType)
			},
		},
		{
			name: "no recognizable failed state",
			events: []Event{
				failed(3, 2, "States.TaskFailed", "boom"),
				{ID: 2, Type: "SomethingNovel", PreviousEventID: 1},
				{ID: 1, Type: "ExecutionStarted", PreviousEventID: 0},
			},
			check: func(t *testing.T, err error) {
				var noState *stepresumeerrors.NoFailedStateFoundError
				require.ErrorAs(t, err, &noState)
				assert.Equal(t, 2, noState.EventsWalked)
			},
		},
		{
			name: "broken predecessor chain",
			events: []Event{
				failed(3, 42, "States.TaskFailed", "boom"),
				{ID: 2, Type: "ExecutionStarted", PreviousEventID: 0},
			},
			check: func(t *testing.T, err error) {
				assert.True(t, stepresumeerrors.IsNoFailedStateFound(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Locate(tt.events)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLocateParallelFlagIsNeverCleared(t *testing.T) {
	// Once a ParallelStateFailed is seen, a later TaskStateEntered outside
	// the parallel must still be skipped in favor of the ParallelStateEntered.
	events := []Event{
		failed(6, 5, "States.TaskFailed", "boom"),
		{ID: 5, Type: TypeParallelStateFailed, PreviousEventID: 4},
		entered(4, 3, TypeTaskStateEntered, "InnerTask", `{}`),
		entered(3, 2, TypeParallelStateEntered, "Outer", `{"p":1}`),
		entered(2, 1, TypeTaskStateEntered, "BeforeParallel", `{}`),
		{ID: 1, Type: "ExecutionStarted", PreviousEventID: 0},
	}

	failure, err := Locate(events)
	require.NoError(t, err)
	assert.Equal(t, "Outer", failure.StateName)
}
