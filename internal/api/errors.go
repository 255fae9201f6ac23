package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx response from the backend.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "failed"
	}
	return e.Detail
}

// Verbose renders the request line along with the status, for logs.
func (e *Error) Verbose() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Error())
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a backend response.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
