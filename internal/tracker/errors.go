package tracker

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned when the Tracker API answers with a non-2xx
// status. Messages carries the errorMessages from the API's error body
// when one could be decoded.
type StatusError struct {
	StatusCode int
	Messages   []string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(
		"tracker API error (%d): %s",
		e.StatusCode, strings.Join(e.Messages, "; "),
	)
}

// IsNotFound reports whether err is a Tracker 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) &&
		statusErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a Tracker 401 response,
// meaning the OAuth token or organization id was rejected.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) &&
		statusErr.StatusCode == http.StatusUnauthorized
}
