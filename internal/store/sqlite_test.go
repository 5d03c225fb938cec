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

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := Recovery{
		ExecutionARN:  "arn:aws:states:us-east-1:1:execution:m:r1",
		FailedState:   "Validate",
		NewMachineARN: "arn:aws:states:us-east-1:1:stateMachine:m-with-GoToState",
		CreatedAt:     time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	second := Recovery{
		ExecutionARN:  "arn:aws:states:us-east-1:1:execution:m:r2",
		FailedState:   "FanOut",
		NewMachineARN: "arn:aws:states:us-east-1:1:stateMachine:m-with-GoToState-2",
		CreatedAt:     time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, s.Record(ctx, first))
	require.NoError(t, s.Record(ctx, second))

	recs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Newest first.
	assert.Equal(t, "FanOut", recs[0].FailedState)
	assert.Equal(t, "Validate", recs[1].FailedState)
	assert.NotEmpty(t, recs[0].ID)
	assert.Equal(t, second.CreatedAt, recs[0].CreatedAt)
}

func TestListLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, Recovery{
			ExecutionARN:  "arn:aws:states:us-east-1:1:execution:m:r",
			FailedState:   "S",
			NewMachineARN: "arn:aws:states:us-east-1:1:stateMachine:n",
			CreatedAt:     time.Date(2026, 8, 1, 10, i, 0, 0, time.UTC),
		}))
	}

	recs, err := s.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
