// ABOUTME: Error normalization for the team builder API client
// ABOUTME: Transport and server errors both surface as APIError with readable messages

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is the single failure kind surfaced by the client. Transport
// failures and structured API errors both arrive in this shape so callers
// never need to distinguish them.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return strings.Join(e.Messages, "; ")
}

// errorBody matches the backend error envelope: {"error": {"message": ...}}
// where message is either a string or an array of strings.
type errorBody struct {
	Error struct {
		Message json.RawMessage `json:"message"`
	} `json:"error"`
}

// transportError normalizes connection and context failures.
func transportError(ctx context.Context, baseURL string, err error) *APIError {
	switch ctx.Err() {
	case context.Canceled:
		return &APIError{Messages: []string{"request canceled"}}
	case context.DeadlineExceeded:
		return &APIError{Messages: []string{"request timed out"}}
	}
	return &APIError{Messages: []string{fmt.Sprintf("cannot connect to %s: %v", baseURL, err)}}
}

// responseError parses a non-2xx API response into an APIError.
func responseError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Error.Message) == 0 {
		apiErr.Messages = []string{fmt.Sprintf("backend returned status %d", resp.StatusCode)}
		return apiErr
	}

	var single string
	if err := json.Unmarshal(body.Error.Message, &single); err == nil {
		apiErr.Messages = []string{single}
		return apiErr
	}

	var many []string
	if err := json.Unmarshal(body.Error.Message, &many); err == nil && len(many) > 0 {
		apiErr.Messages = many
		return apiErr
	}

	apiErr.Messages = []string{fmt.Sprintf("backend returned status %d", resp.StatusCode)}
	return apiErr
}
