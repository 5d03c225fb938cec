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
	"fmt"
	"strconv"
	"strings"

	"github.com/tombee/stepresume/pkg/errors"
)

// runtimeErrorCode marks failures where the engine aborted before recording a
// normal state-entry chain, e.g. a task invoking a Lambda function in another
// region or account.
const runtimeErrorCode = "States.Runtime"

// causeEventIDToken is the position of the failing event's id within the
// whitespace-split States.Runtime cause message. The format is owned by the
// service and not guaranteed; everything coupled to it stays in this file so
// it can be swapped out wholesale if the message shape changes.
const causeEventIDToken = 13

// locateFromRuntimeCause recovers the failed state for a States.Runtime
// failure. The cause text embeds the id of the event at which the engine gave
// up; the digits of the token at causeEventIDToken are that id, and the
// state-entered event with that id names the failed state. Best effort: any
// deviation from the expected shape returns *errors.RuntimeErrorDecodeError.
func locateFromRuntimeCause(events []Event, cause string) (Failure, error) {
	id, err := decodeRuntimeCauseEventID(cause)
	if err != nil {
		return Failure{}, err
	}

	ev, ok := eventByID(events, id)
	if !ok {
		return Failure{}, &errors.RuntimeErrorDecodeError{
			Cause:  cause,
			Reason: fmt.Sprintf("decoded event id %d is outside the history (%d events)", id, len(events)),
		}
	}

	if ev.StateEnteredEventDetails == nil {
		return Failure{}, &errors.RuntimeErrorDecodeError{
			Cause:  cause,
			Reason: fmt.Sprintf("event %d (%s) carries no state-entered details", id, ev.Type),
		}
	}

	return Failure{
		StateName: ev.StateEnteredEventDetails.Name,
		Input:     ev.StateEnteredEventDetails.Input,
	}, nil
}

// decodeRuntimeCauseEventID extracts the failing event id from a
// States.Runtime cause message.
func decodeRuntimeCauseEventID(cause string) (int64, error) {
	tokens := strings.Fields(cause)
	if len(tokens) <= causeEventIDToken {
		return 0, &errors.RuntimeErrorDecodeError{
			Cause:  cause,
			Reason: fmt.Sprintf("expected at least %d tokens, got %d", causeEventIDToken+1, len(tokens)),
		}
	}

	var digits strings.Builder
	for _, r := range tokens[causeEventIDToken] {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, &errors.RuntimeErrorDecodeError{
			Cause:  cause,
			Reason: fmt.Sprintf("token %q contains no digits", tokens[causeEventIDToken]),
		}
	}

	id, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, &errors.RuntimeErrorDecodeError{
			Cause:  cause,
			Reason: fmt.Sprintf("parsing %q: %v", digits.String(), err),
		}
	}
	return id, nil
}
