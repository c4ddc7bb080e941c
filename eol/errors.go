package eol

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a [FetchError].
type ErrorKind string

const (
	// KindNetwork is a transport failure: DNS, connect, timeout, read.
	KindNetwork ErrorKind = "network"

	// KindBadStatus is any response status other than 200.
	KindBadStatus ErrorKind = "bad_status"

	// KindMalformed is a body that is not valid JSON or not an object.
	KindMalformed ErrorKind = "malformed_response"

	// KindInvalidIdentifier is an identifier no resource can be derived from.
	KindInvalidIdentifier ErrorKind = "invalid_identifier"
)

// Sentinels for errors.Is matching against a [FetchError] kind.
var (
	ErrNetwork           = errors.New("network error")
	ErrBadStatus         = errors.New("bad status")
	ErrMalformed         = errors.New("malformed response")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// FetchError is the single error type returned at the fetch boundary.
type FetchError struct {
	Kind ErrorKind

	// URL is the resource being requested when the error occurred.
	URL string

	// StatusCode is set for KindBadStatus, zero otherwise.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch {
	case e.Kind == KindBadStatus:
		return fmt.Sprintf("%s: GET %s returned status %d", e.Kind, e.URL, e.StatusCode)
	case e.Err != nil && e.URL != "":
		return fmt.Sprintf("%s: GET %s: %v", e.Kind, e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrBadStatus:
		return e.Kind == KindBadStatus
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrInvalidIdentifier:
		return e.Kind == KindInvalidIdentifier
	}
	return false
}
