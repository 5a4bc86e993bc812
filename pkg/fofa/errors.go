package fofa

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure reported by the client.
type ErrorKind int

// Error kinds. Every failure surfaced by the client carries exactly one of them.
const (
	KindConfiguration ErrorKind = iota + 1
	KindTransport
	KindProtocol
	KindApplication
)

// DefaultErrorMessage is used when the service flags an error without a message.
const DefaultErrorMessage = "unknown error"

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the client.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindProtocol:
		if e.StatusCode != 0 && e.Body != "" {
			return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
		}
	case KindTransport:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
	}

	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports missing or malformed credentials.
func NewConfigurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// NewTransportError reports a connection failure or timeout.
func NewTransportError(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// NewProtocolError reports a body that could not be decoded as JSON.
func NewProtocolError(statusCode int, body string, err error) *Error {
	return &Error{
		Kind:       KindProtocol,
		Message:    "malformed response body",
		StatusCode: statusCode,
		Body:       body,
		Err:        err,
	}
}

// NewApplicationError reports a failure the service declared itself.
func NewApplicationError(statusCode int, message string) *Error {
	if message == "" {
		message = DefaultErrorMessage
	}

	return &Error{Kind: KindApplication, Message: message, StatusCode: statusCode}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	fofaErr := &Error{}
	if errors.As(err, &fofaErr) {
		return fofaErr.Kind
	}

	return 0
}

// IsConfigurationError checks if the error is a configuration error.
func IsConfigurationError(err error) bool {
	return KindOf(err) == KindConfiguration
}

// IsTransportError checks if the error is a transport error.
func IsTransportError(err error) bool {
	return KindOf(err) == KindTransport
}

// IsProtocolError checks if the error is a protocol error.
func IsProtocolError(err error) bool {
	return KindOf(err) == KindProtocol
}

// IsApplicationError checks if the error is an application error.
func IsApplicationError(err error) bool {
	return KindOf(err) == KindApplication
}
