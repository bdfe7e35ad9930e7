package backend

import (
	"fmt"
	"net/http"

	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
)

// RequestError is returned for any non-2xx backend response.
// Structured is true when the message came from the body's "detail" field.
type RequestError struct {
	StatusCode int
	Message    string
	Structured bool
}

func (e *RequestError) Error() string {
	return e.Message
}

// UserMessage is the text shown to the dashboard user
func (e *RequestError) UserMessage() string {
	return e.Message
}

// newRequestError builds the error for a failed response. detail is the
// decoded "detail" field, empty when the body could not be parsed.
func newRequestError(status int, detail string) *RequestError {
	if detail != "" {
		return &RequestError{StatusCode: status, Message: detail, Structured: true}
	}
	return &RequestError{
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP error! status: %d", status),
	}
}

// NotFound reports whether the backend answered 404
func (e *RequestError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

var _ port.NotFoundError = (*RequestError)(nil)
