package gateway

import (
	"fmt"

	xerrors "github.com/stoneridge/go-marketplace-client/internal/errors"
)

// genericFailureMessage is shown when the server supplied no message
// field, typically on a transport failure or an empty error body.
const genericFailureMessage = "Something went wrong. Please try again."

// APIError is any non-2xx response from the API. Message carries the
// server-provided message field when one was present.
type APIError struct {
	Status  int
	Path    string
	Message string
	err     error // sentinel category for errors.Is checks
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d on %s: %s", e.Status, e.Path, e.Message)
	}
	return fmt.Sprintf("api error %d on %s", e.Status, e.Path)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// UserMessage renders any error for display, preferring the server's
// message field and falling back to a generic transport-error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if xerrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericFailureMessage
}

// StatusOf returns the HTTP status behind err, or 0 when the error was
// not an API response (a transport or decode failure).
func StatusOf(err error) int {
	var apiErr *APIError
	if xerrors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
