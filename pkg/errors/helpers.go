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

package errors

import (
	"errors"
	"fmt"
)

// Wrap creates a new error that wraps the given error with additional context.
// If err is nil, returns nil.
//
// Usage:
//
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "doing something")
//	}
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf creates a new error that wraps the given error with formatted context.
// If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFailedExecution reports whether err indicates the execution did not fail.
func IsNotFailedExecution(err error) bool {
	var target *NotFailedExecutionError
	return errors.As(err, &target)
}

// IsRuntimeErrorDecode reports whether err indicates a States.Runtime cause
// that could not be decoded.
func IsRuntimeErrorDecode(err error) bool {
	var target *RuntimeErrorDecodeError
	return errors.As(err, &target)
}

// IsNoFailedStateFound reports whether err indicates the history walk found no
// recognizable failed state.
func IsNoFailedStateFound(err error) bool {
	var target *NoFailedStateFoundError
	return errors.As(err, &target)
}

// IsNameCollision reports whether err indicates the grafted state name already
// exists in the definition.
func IsNameCollision(err error) bool {
	var target *NameCollisionError
	return errors.As(err, &target)
}

// IsService reports whether err originated from an AWS service call.
func IsService(err error) bool {
	var target *ServiceError
	return errors.As(err, &target)
}

// As finds the first error in err's tree that matches target type,
// and if one is found, sets target to that error value and returns true.
// This is a convenience wrapper around errors.As from the standard library.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New from the standard library.
func New(message string) error {
	return errors.New(message)
}
