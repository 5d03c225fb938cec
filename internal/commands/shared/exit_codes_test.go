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

package shared

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	stepresumeerrors "github.com/tombee/stepresume/pkg/errors"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"not failed execution", &stepresumeerrors.NotFailedExecutionError{}, ExitRecovery},
		{"runtime decode", &stepresumeerrors.RuntimeErrorDecodeError{}, ExitRecovery},
		{"no failed state", &stepresumeerrors.NoFailedStateFoundError{}, ExitRecovery},
		{"name collision", &stepresumeerrors.NameCollisionError{StateName: "GoToState"}, ExitRecovery},
		{"service", &stepresumeerrors.ServiceError{Operation: "DescribeStateMachine"}, ExitService},
		{"config", &stepresumeerrors.ConfigError{Reason: "bad"}, ExitUsage},
		{"usage", NewUsageError("missing ARN", nil), ExitUsage},
		{"wrapped recovery error", fmt.Errorf("recovering: %w", &stepresumeerrors.NoFailedStateFoundError{}), ExitRecovery},
		{"unknown", fmt.Errorf("boom"), ExitInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestSuggestion(t *testing.T) {
	assert.NotEmpty(t, Suggestion(&stepresumeerrors.NameCollisionError{StateName: "GoToState"}))
	assert.Empty(t, Suggestion(fmt.Errorf("boom")))
}
