package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMalformedResponse is returned when a list endpoint answers with neither
// a JSON array nor an object carrying a "content" array.
var ErrMalformedResponse = errors.New("malformed response")

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string

	// FromServer is true when Message came from the response's
	// "message" or "error" field rather than the raw body or status text.
	FromServer bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func newAPIError(status int, body []byte) *APIError {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if msg := strings.TrimSpace(errResp.Message); msg != "" {
			return &APIError{StatusCode: status, Message: msg, FromServer: true}
		}
		if msg := strings.TrimSpace(errResp.Error); msg != "" {
			return &APIError{StatusCode: status, Message: msg, FromServer: true}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// UserMessage picks the text to show a user for err: the server-supplied
// message when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.FromServer {
		return apiErr.Message
	}
	return fallback
}
