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
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sfn/types"

	"github.com/tombee/stepresume/internal/log"
	"github.com/tombee/stepresume/pkg/history"
)

// historyPageSize is the GetExecutionHistory page size (the API maximum).
const historyPageSize = 1000

// ExecutionHistory fetches the complete event history of one execution,
// most-recent-first, following pagination until the service reports no more
// pages. The locator requires the full history because the predecessor chain
// can reach back to the execution's first event.
func (c *Client) ExecutionHistory(ctx context.Context, executionARN string) ([]history.Event, error) {
	var events []history.Event
	var nextToken *string

	for {
		out, err := c.api.GetExecutionHistory(ctx, &sfn.GetExecutionHistoryInput{
			ExecutionArn: aws.String(executionARN),
			ReverseOrder: true,
			MaxResults:   historyPageSize,
			NextToken:    nextToken,
		})
		if err != nil {
			return nil, wrapService("GetExecutionHistory", err)
		}

		for _, ev := range out.Events {
			events = append(events, convertEvent(ev))
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	c.logger.Debug("fetched execution history",
		slog.String(log.ExecutionKey, executionARN),
		slog.Int(log.EventCountKey, len(events)))

	return events, nil
}

// convertEvent maps an SDK history event onto the locator's model.
func convertEvent(ev types.HistoryEvent) history.Event {
	out := history.Event{
		ID:              ev.Id,
		Type:            string(ev.Type),
		PreviousEventID: ev.PreviousEventId,
	}
	if ev.Timestamp != nil {
		out.Timestamp = *ev.Timestamp
	}
	if d := ev.StateEnteredEventDetails; d != nil {
		out.StateEnteredEventDetails = &history.StateEnteredEventDetails{
			Name:  aws.ToString(d.Name),
			Input: aws.ToString(d.Input),
		}
	}
	if d := ev.ExecutionFailedEventDetails; d != nil {
		out.ExecutionFailedEventDetails = &history.ExecutionFailedEventDetails{
			Error: aws.ToString(d.Error),
			Cause: aws.ToString(d.Cause),
		}
	}
	return out
}
