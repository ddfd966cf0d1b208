package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidRequest is returned before any network call when a request
	// fails validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDecode wraps a response body that could not be decoded.
	ErrDecode = errors.New("decode response")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Op     string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: backend returned %d %s: %s", e.Op, e.Code, http.StatusText(e.Code), e.Detail)
	}
	return fmt.Sprintf("%s: backend returned %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
