// Package api implements the client side of the complaint service:
// authentication, the submission pipeline, and read/update access to the
// complaint collection. Every failure is normalized into the Error
// taxonomy below; raw transport errors never escape the package.
package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a client failure.
type ErrorKind string

const (
	// KindValidation means the draft was rejected locally, before any
	// network call.
	KindValidation ErrorKind = "validation"
	// KindNetwork means the request got no response (DNS failure,
	// connection reset, timeout). Network failures are retriable.
	KindNetwork ErrorKind = "network"
	// KindServer means the backend answered with an error status or an
	// unusable body. Server failures are terminal.
	KindServer ErrorKind = "server"
	// KindAuth means the backend rejected the supplied credentials.
	KindAuth ErrorKind = "auth"
)

// Error is the normalized failure returned by every operation in this
// package. Message is safe to show to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Kind returns the ErrorKind of err, or "" if err is not an api error.
func Kind(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func validationErr(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func networkErr(cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "could not reach the server, please try again",
		cause:   cause,
	}
}

func serverErr(message string, cause error) *Error {
	if message == "" {
		message = "the server could not process the request"
	}
	return &Error{Kind: KindServer, Message: message, cause: cause}
}

func authErr(message string) *Error {
	if message == "" {
		message = "an error occurred, please try again"
	}
	return &Error{Kind: KindAuth, Message: message}
}
