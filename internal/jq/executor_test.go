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

package jq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteJSON(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		input      string
		want       interface{}
		wantErr    bool
	}{
		{
			name:       "field access",
			expression: ".order.id",
			input:      `{"order":{"id":"o-17"}}`,
			want:       "o-17",
		},
		{
			name:       "empty expression returns document",
			expression: "",
			input:      `{"x":1}`,
			want:       map[string]interface{}{"x": float64(1)},
		},
		{
			name:       "multiple results become an array",
			expression: ".items[]",
			input:      `{"items":[1,2]}`,
			want:       []interface{}{float64(1), float64(2)},
		},
		{
			name:       "missing field yields null",
			expression: ".nope",
			input:      `{"x":1}`,
			want:       nil,
		},
		{
			name:       "invalid expression",
			expression: ".[bad",
			input:      `{}`,
			wantErr:    true,
		},
		{
			name:       "invalid input JSON",
			expression: ".",
			input:      `{broken`,
			wantErr:    true,
		},
	}

	exec := NewExecutor(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exec.ExecuteJSON(context.Background(), tt.expression, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
