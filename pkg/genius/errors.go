package genius

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Predefined errors for common cases.
var (
	// ErrInvalidArgument is returned when a parameter violates its contract.
	// No network activity happens before it is returned.
	ErrInvalidArgument = errors.New("genius: invalid argument")

	// ErrAccessDenied is returned when Genius answers with HTTP 403. Song
	// pages return it when the request looks automated.
	ErrAccessDenied = errors.New("genius: access denied")

	// ErrNoResult is returned when a page was fetched but no lyrics text
	// could be extracted from it.
	ErrNoResult = errors.New("genius: no result")

	// ErrNoAccessToken is returned when an API call is made without an
	// access token.
	ErrNoAccessToken = errors.New("genius: access token required")

	// ErrTransport matches every *TransportError under errors.Is.
	ErrTransport = errors.New("genius: transport failure")
)

// Error represents an error envelope returned by the Genius API.
type Error struct {
	Status  int    // HTTP status reported in meta.status
	Message string // meta.message or error_description
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("genius: api error %d: %s", e.Status, e.Message)
}

// Is checks if the target error is a Genius API error with the same status.
//
// An API error with status 403 also matches ErrAccessDenied.
func (e *Error) Is(target error) bool {
	if target == ErrAccessDenied {
		return e.Status == http.StatusForbidden
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// TransportError is a network failure or an unexpected (non-403) HTTP
// status while talking to Genius. Err holds the underlying error unchanged.
type TransportError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

// Error returns the error message.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return "genius: GET " + e.URL + ": unexpected status " + strconv.Itoa(e.StatusCode)
	}
	return "genius: GET " + e.URL + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ParseBool converts textual input for boolean options such as
// "remove section headers". Anything that is not a boolean spelling fails
// with ErrInvalidArgument.
func ParseBool(name, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidArgument, name, value)
	}
	return b, nil
}
