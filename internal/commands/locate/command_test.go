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

package locate

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/stepresume/pkg/history"
)

type fakeService struct {
	events []history.Event
}

func (f *fakeService) ExecutionHistory(ctx context.Context, arn string) ([]history.Event, error) {
	return f.events, nil
}

func newTestCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func failedHistory() []history.Event {
	return []history.Event{
		{
			ID: 3, Type: history.TypeExecutionFailed, PreviousEventID: 2,
			ExecutionFailedEventDetails: &history.ExecutionFailedEventDetails{
				Error: "States.TaskFailed", Cause: "boom",
			},
		},
		{
			ID: 2, Type: history.TypeTaskStateEntered, PreviousEventID: 1,
			StateEnteredEventDetails: &history.StateEnteredEventDetails{
				Name: "Ship", Input: `{"order":{"id":"o-17"}}`,
			},
		},
		{ID: 1, Type: "ExecutionStarted", PreviousEventID: 0},
	}
}

func TestRunLocate(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCommand(&out)

	err := runLocate(cmd, &fakeService{events: failedHistory()}, "arn", "")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Ship")
	assert.Contains(t, out.String(), `"o-17"`)
}

func TestRunLocateWithQuery(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCommand(&out)

	err := runLocate(cmd, &fakeService{events: failedHistory()}, "arn", ".order.id")
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"o-17"`)
	assert.NotContains(t, out.String(), "order\":")
}

func TestRunLocateBadQuery(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCommand(&out)

	err := runLocate(cmd, &fakeService{events: failedHistory()}, "arn", ".[bad")
	assert.Error(t, err)
}

func TestRunLocateNotFailed(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCommand(&out)

	svc := &fakeService{events: []history.Event{
		{ID: 1, Type: "ExecutionSucceeded", PreviousEventID: 0},
	}}
	err := runLocate(cmd, svc, "arn", "")
	assert.Error(t, err)
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()
	assert.Equal(t, "locate <execution-arn>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("query"))
}
