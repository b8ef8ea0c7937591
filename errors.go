package onvif

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// ErrorKind is the closed set of failure classes a capability client reports
type ErrorKind string

const (
	// KindClientCreation means binding or service resolution failed
	KindClientCreation ErrorKind = "client_creation"
	// KindServiceNotInitialized means an operation ran on a client without a session
	KindServiceNotInitialized ErrorKind = "service_not_initialized"
	// KindTimeout means the transport reported a connect or read timeout
	KindTimeout ErrorKind = "timeout"
	// KindServiceInvocation covers every other protocol or normalization failure
	KindServiceInvocation ErrorKind = "service_invocation"
)

// Sentinels for errors.Is comparisons against an *Error.
var (
	ErrClientCreation        = &Error{Kind: KindClientCreation}
	ErrServiceNotInitialized = &Error{Kind: KindServiceNotInitialized}
	ErrTimeout               = &Error{Kind: KindTimeout}
	ErrServiceInvocation     = &Error{Kind: KindServiceInvocation}
)

// Error is returned by every capability client operation and constructor
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	switch e.Kind {
	case KindClientCreation:
		msg = "couldn't create onvif client"
	case KindServiceNotInitialized:
		msg = "service isn't initialized"
	case KindTimeout:
		msg = "onvif timeout error"
	case KindServiceInvocation:
		msg = "onvif service error"
	}

	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the package sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func creationError(op string, err error) *Error {
	return newError(KindClientCreation, op, err)
}

func notInitializedError(op string) *Error {
	return newError(KindServiceNotInitialized, op, nil)
}

// classify maps a failure raised while invoking op to its error kind.
// Errors that already carry a kind keep it.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	if isTimeout(err) {
		return newError(KindTimeout, op, err)
	}
	return newError(KindServiceInvocation, op, err)
}

// isTimeout reports whether err is a transport connect/read timeout
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// SOAPFault is a fault returned by the device in place of a response body
type SOAPFault struct {
	Code    string
	Subcode string
	Reason  string
}

func (f *SOAPFault) Error() string {
	if msg, ok := knownFaults[localPart(f.Subcode)]; ok {
		return fmt.Sprintf("SOAP fault: %s", msg)
	}
	if f.Reason != "" {
		return fmt.Sprintf("SOAP fault: %s", f.Reason)
	}
	if f.Subcode != "" {
		return fmt.Sprintf("SOAP fault: %s", f.Subcode)
	}
	return "SOAP fault in response"
}

// Common ONVIF fault subcodes
var knownFaults = map[string]string{
	"NotAuthorized":      "not authorized",
	"UsernameClash":      "username already exists",
	"UsernameMissing":    "username not found",
	"TooManyUsers":       "maximum number of users reached",
	"FixedUser":          "cannot modify or delete fixed user",
	"Password":           "password does not meet requirements",
	"ActionNotSupported": "action not supported",
	"NoProfile":          "profile does not exist",
	"NoRecording":        "recording does not exist",
}
