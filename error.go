package email

import (
	"errors"
	"fmt"
)

type ErrorReason string

const (
	REASON_MISSING_API_KEY          ErrorReason = "MISSING_API_KEY"
	REASON_INCORRECT_API_KEY_FORMAT ErrorReason = "INCORRECT_API_KEY_FORMAT"
	REASON_MISSING_REQUIRED_FIELD   ErrorReason = "MISSING_REQUIRED_FIELD"
	REASON_INVALID_ADDRESS          ErrorReason = "INVALID_ADDRESS"
	REASON_INVALID_JSON             ErrorReason = "INVALID_JSON"
	REASON_REQUEST_ERROR            ErrorReason = "REQUEST_ERROR"
	REASON_ENDPOINT_ERROR           ErrorReason = "ENDPOINT_ERROR"
)

var _ error = &Error{}

type Error struct {
	Message string
	Reason  ErrorReason
	Cause   error

	// Field names the offending field for REASON_MISSING_REQUIRED_FIELD and
	// REASON_INVALID_ADDRESS.
	Field string

	// StatusCode, Code and RequestID describe a failure reported by the
	// remote service. They are only set for REASON_ENDPOINT_ERROR and may be
	// empty when the provider did not supply them.
	StatusCode int
	Code       string
	RequestID  string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s.", e.Reason, e.Message)
	if e.Code != "" {
		s += fmt.Sprintf(" Code: %s.", e.Code)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" Cause: %s", e.Cause)
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HasReason reports whether err wraps an *Error with the given reason.
func HasReason(err error, reason ErrorReason) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Reason == reason
}

func newError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Message: message,
		Reason:  reason,
		Cause:   cause,
	}
}

func NewMissingAPIKeyError(message string) *Error {
	return newError(REASON_MISSING_API_KEY, message, nil)
}

func NewIncorrectAPIKeyFormatError(message string) *Error {
	return newError(REASON_INCORRECT_API_KEY_FORMAT, message, nil)
}

func NewMissingRequiredFieldError(field string) *Error {
	e := newError(REASON_MISSING_REQUIRED_FIELD, fmt.Sprintf("%s is a required field", field), nil)
	e.Field = field
	return e
}

// NewInvalidAddressError reports an address in field that a provider cannot
// place in a message header.
func NewInvalidAddressError(field string, cause error) *Error {
	e := newError(REASON_INVALID_ADDRESS, fmt.Sprintf("%s contains an invalid address", field), cause)
	e.Field = field
	return e
}

func NewInvalidJSONError(message string, cause error) *Error {
	return newError(REASON_INVALID_JSON, message, cause)
}

func NewRequestError(message string, cause error) *Error {
	return newError(REASON_REQUEST_ERROR, message, cause)
}

func NewEndpointError(message string, cause error) *Error {
	return newError(REASON_ENDPOINT_ERROR, message, cause)
}
