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
	"github.com/tombee/stepresume/pkg/errors"
)

// Locate finds the state at which a failed execution stopped.
//
// The events must be the complete history of one execution, ordered
// most-recent-first, so that events[0] is the ExecutionFailed event. Locate
// walks the previousEventId chain backward from the failure until it finds
// either the entered event of the failed task or, when the failure happened
// inside a parallel branch, the entered event of the enclosing Parallel state.
//
// Parallel tracking is deliberately flat: a single flag is set on the first
// ParallelStateFailed encountered and never cleared, which matches the
// one-failure-per-walk contract. Nested parallels are not distinguished by
// depth.
//
// Failure modes: *errors.NotFailedExecutionError if events[0] is not an
// ExecutionFailed event, *errors.RuntimeErrorDecodeError if a States.Runtime
// cause cannot be decoded, and *errors.NoFailedStateFoundError if the chain is
// exhausted without a match.
func Locate(events []Event) (Failure, error) {
	if len(events) == 0 {
		return Failure{}, &errors.NotFailedExecutionError{}
	}

	last := events[0]
	if last.Type != TypeExecutionFailed || last.ExecutionFailedEventDetails == nil {
		return Failure{}, &errors.NotFailedExecutionError{EventType: last.Type}
	}

	// A States.Runtime failure aborts before a normal state-entry chain is
	// recorded, so the failed state has to be recovered from the cause text.
	if last.ExecutionFailedEventDetails.Error == runtimeErrorCode {
		return locateFromRuntimeCause(events, last.ExecutionFailedEventDetails.Cause)
	}

	insideFailedParallel := false
	walked := 0

	for cursor := last.PreviousEventID; cursor != 0; {
		ev, ok := eventByID(events, cursor)
		if !ok {
			// Broken chain, treat like an unrecognized log shape.
			return Failure{}, &errors.NoFailedStateFoundError{EventsWalked: walked}
		}
		walked++

		switch {
		case ev.Type == TypeParallelStateFailed:
			// The failed state is a Parallel state. Keep walking until its
			// entered event; the sub-state that actually failed is not an
			// addressable resume target.
			insideFailedParallel = true

		case ev.Type == TypeTaskStateEntered && !insideFailedParallel:
			return failureFrom(ev)

		case ev.Type == TypeParallelStateEntered && insideFailedParallel:
			return failureFrom(ev)
		}

		cursor = ev.PreviousEventID
	}

	return Failure{}, &errors.NoFailedStateFoundError{EventsWalked: walked}
}

// eventByID looks up an event by id in a most-recent-first history. Ids are
// dense and start at 1, so id k lives at index len(events)-k.
func eventByID(events []Event, id int64) (Event, bool) {
	idx := int64(len(events)) - id
	if idx < 0 || idx >= int64(len(events)) {
		return Event{}, false
	}
	return events[idx], true
}

func failureFrom(ev Event) (Failure, error) {
	if ev.StateEnteredEventDetails == nil {
		return Failure{}, &errors.NoFailedStateFoundError{}
	}
	return Failure{
		StateName: ev.StateEnteredEventDetails.Name,
		Input:     ev.StateEnteredEventDetails.Input,
	}, nil
}
