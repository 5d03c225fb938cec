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

// Package statemachine models Amazon States Language definitions and grafts a
// resume-capable entry state into them.
package statemachine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Definition is a state machine definition in the Amazon States Language.
//
// Individual states are kept as raw JSON: the graft never inspects or edits
// existing states, it only adds one of its own, and round-tripping them as
// opaque values guarantees they are republished byte-for-byte equivalent.
type Definition struct {
	Comment        string                     `json:"Comment,omitempty"`
	StartAt        string                     `json:"StartAt"`
	TimeoutSeconds int64                      `json:"TimeoutSeconds,omitempty"`
	Version        string                     `json:"Version,omitempty"`
	States         map[string]json.RawMessage `json:"States"`
}

// Parse decodes an ASL definition from its JSON form.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing state machine definition: %w", err)
	}
	return &def, nil
}

// Serialize encodes the definition back to JSON for publishing.
func (d *Definition) Serialize() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("serializing state machine definition: %w", err)
	}
	return data, nil
}

// clone returns a deep copy. States are raw bytes, so copying the map is
// enough for the caller's original to stay untouched.
func (d *Definition) clone() *Definition {
	cp := *d
	cp.States = make(map[string]json.RawMessage, len(d.States)+1)
	for name, body := range d.States {
		cp.States[name] = body
	}
	return &cp
}

// executionARNSegments is the segment count of an execution ARN:
// arn:aws:states:region:account:execution:machineName:executionName
const executionARNSegments = 8

// MachineARNFromExecutionARN derives a state machine ARN from one of its
// execution ARNs by dropping the execution name and swapping the resource
// type to stateMachine.
func MachineARNFromExecutionARN(executionARN string) (string, error) {
	parts := strings.Split(executionARN, ":")
	if len(parts) != executionARNSegments || parts[5] != "execution" {
		return "", fmt.Errorf("not an execution ARN: %q", executionARN)
	}
	parts = parts[:len(parts)-1]
	parts[5] = "stateMachine"
	return strings.Join(parts, ":"), nil
}
