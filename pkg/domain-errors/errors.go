// Package domainerrors defines the coded error vocabulary the engine exposes to
// callers. Every failure a caller can act on carries a stable Code plus a
// human-readable message; rejection errors additionally preserve the tax
// authority's observations verbatim, since compliance rules require surfacing
// the regulator's exact wording.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable discriminator for engine failures.
type Code string

const (
	// Credential / token errors.
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeAccessDenied       Code = "access_denied"
	CodeSessionExpired     Code = "session_expired"
	CodeSessionNotFound    Code = "session_not_found"

	// Certificate errors.
	CodeWrongPassword      Code = "wrong_password"
	CodeMissingPrivateKey  Code = "missing_private_key"
	CodeMissingCertificate Code = "missing_certificate"
	CodeUnsupportedKeyType Code = "unsupported_key_type"
	CodeCertificateExpired Code = "certificate_expired"
	CodeInvalidCertificate Code = "invalid_certificate"
	CodeSessionDestroyed   Code = "session_destroyed"

	// Signing errors.
	CodeSigningFailed Code = "signing_failed"

	// Protocol / transport errors.
	CodeTransport          Code = "transport"
	CodeTimeout            Code = "timeout"
	CodeRejected           Code = "rejected"
	CodeUnexpectedResponse Code = "unexpected_response"

	// Builder errors.
	CodeUnsupportedKind Code = "unsupported_kind"
	CodeInvalidInput    Code = "invalid_input"

	// Queue errors.
	CodeNotFound      Code = "not_found"
	CodeNotCancelable Code = "not_cancelable"
	CodeNotRetryable  Code = "not_retryable"

	CodeInternal Code = "internal_error"
)

// Error is a domain error with a discriminator code. Observations, when set,
// carry the authority's rejection reasons exactly as received.
type Error struct {
	Code         Code
	Message      string
	Observations []string
	cause        error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a domain error that records cause for errors.Is/As chains.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithObservations attaches the authority's verbatim rejection reasons.
func (e *Error) WithObservations(obs []string) *Error {
	e.Observations = obs
	return e
}

// CodeOf extracts the domain code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}
