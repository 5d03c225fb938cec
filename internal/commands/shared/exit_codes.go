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
	"os"

	stepresumeerrors "github.com/tombee/stepresume/pkg/errors"
)

// Exit codes for stepresume commands
const (
	ExitSuccess  = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitRecovery = 3 // the failure-location or graft algorithm refused
	ExitService  = 4 // an AWS call failed
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUsageError creates an error for invalid invocations.
func NewUsageError(msg string, cause error) *ExitError {
	return &ExitError{Code: ExitUsage, Message: msg, Cause: cause}
}

// ExitCodeFor maps an error to the process exit code its category demands.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if stepresumeerrors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case stepresumeerrors.IsNotFailedExecution(err),
		stepresumeerrors.IsRuntimeErrorDecode(err),
		stepresumeerrors.IsNoFailedStateFound(err),
		stepresumeerrors.IsNameCollision(err):
		return ExitRecovery
	case stepresumeerrors.IsService(err):
		return ExitService
	}

	var cfgErr *stepresumeerrors.ConfigError
	if stepresumeerrors.As(err, &cfgErr) {
		return ExitUsage
	}

	return ExitInternal
}

// Suggestion returns actionable guidance for well-known error conditions,
// or "" when there is nothing useful to say.
func Suggestion(err error) string {
	switch {
	case stepresumeerrors.IsNotFailedExecution(err):
		return "check the execution ARN: only failed executions can be recovered"
	case stepresumeerrors.IsRuntimeErrorDecode(err):
		return "the States.Runtime cause format was not recognized; inspect the execution history manually"
	case stepresumeerrors.IsNameCollision(err):
		return "the state machine already carries a GoToState graft; recover from the original machine instead"
	}
	return ""
}

// HandleExitError prints err and exits with the code its category demands.
func HandleExitError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err.Error())
	if s := Suggestion(err); s != "" {
		fmt.Fprintln(os.Stderr, "Suggestion:", s)
	}

	os.Exit(ExitCodeFor(err))
}
