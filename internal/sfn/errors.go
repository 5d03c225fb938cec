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

package sfn

import (
	"strings"

	"github.com/aws/smithy-go"

	stepresumeerrors "github.com/tombee/stepresume/pkg/errors"
)

// wrapService converts an SDK error into a *errors.ServiceError, pulling the
// AWS error code out when the SDK provides one.
func wrapService(operation string, err error) error {
	if err == nil {
		return nil
	}

	svcErr := &stepresumeerrors.ServiceError{
		Operation: operation,
		Message:   sanitizeMessage(err.Error()),
		Cause:     err,
	}

	var apiErr smithy.APIError
	if stepresumeerrors.As(err, &apiErr) {
		svcErr.Code = apiErr.ErrorCode()
		svcErr.Message = sanitizeMessage(apiErr.ErrorMessage())
	}

	return svcErr
}

// sanitizeMessage redacts AWS access key ids (AKIA + 16 chars) from error
// messages before they reach logs or the terminal.
func sanitizeMessage(msg string) string {
	searchPos := 0
	for {
		akiaPos := strings.Index(msg[searchPos:], "AKIA")
		if akiaPos == -1 {
			break
		}
		akiaPos += searchPos

		endPos := akiaPos + 20 // 4 (AKIA) + 16
		if endPos > len(msg) {
			endPos = len(msg)
		}

		msg = msg[:akiaPos] + "AKIA****" + msg[endPos:]
		searchPos = akiaPos + len("AKIA****")
	}
	// ARNs and state machine names are acceptable for debugging
	return msg
}
