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

package statemachine

import (
	"encoding/json"

	"github.com/tombee/stepresume/pkg/errors"
)

// GoToStateName is the reserved name of the grafted entry state.
const GoToStateName = "GoToState"

// ResumeFlagPath is the input path the grafted state tests to decide between
// a fresh run and a resume.
const ResumeFlagPath = "$.resuming"

// choiceRule is one branch of the grafted Choice state.
type choiceRule struct {
	Variable      string `json:"Variable"`
	BooleanEquals bool   `json:"BooleanEquals"`
	Next          string `json:"Next"`
}

// choiceState is the grafted Choice state itself.
type choiceState struct {
	Type    string       `json:"Type"`
	Choices []choiceRule `json:"Choices"`
	Default string       `json:"Default"`
}

// Graft returns a copy of def whose entry point is a new GoToState Choice
// state with two outcomes: when the input carries "resuming": false, execution
// proceeds to the definition's original StartAt; in every other case,
// including when the resuming field is absent, the Default branch jumps to
// failedState.
//
// Note the asymmetry: absence of the resuming field resumes at the failed
// state, because the Choice tests BooleanEquals false rather than true. Pass
// {"resuming": false} explicitly to run the machine from the top.
//
// The input definition is never modified; every pre-existing state is carried
// into the copy untouched. If the definition already contains a state named
// GoToState, Graft returns *errors.NameCollisionError rather than overwrite it.
func Graft(def *Definition, failedState string) (*Definition, error) {
	if def.StartAt == "" {
		return nil, errors.New("definition has no StartAt")
	}
	if _, exists := def.States[GoToStateName]; exists {
		return nil, &errors.NameCollisionError{StateName: GoToStateName}
	}

	goToState := choiceState{
		Type: "Choice",
		Choices: []choiceRule{
			{Variable: ResumeFlagPath, BooleanEquals: false, Next: def.StartAt},
		},
		Default: failedState,
	}
	body, err := json.Marshal(goToState)
	if err != nil {
		return nil, errors.Wrap(err, "encoding GoToState")
	}

	grafted := def.clone()
	grafted.States[GoToStateName] = body
	grafted.StartAt = GoToStateName
	return grafted, nil
}
