// Package autherr defines the closed set of error variants used across the
// authentication relay. Every failure below the HTTP edge is converted into
// one of these kinds at the point of detection; handlers map kinds to status
// codes exactly once.
package autherr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	// KindNoCredential means no usable bearer credential was found anywhere.
	KindNoCredential Kind = "no_credential"
	// KindCredentialRejected means the backend of record explicitly rejected
	// a bearer credential (expired or invalid signature).
	KindCredentialRejected Kind = "credential_rejected"
	// KindRenewalInvalid means the renewal credential itself was rejected;
	// terminal for the session, never retried.
	KindRenewalInvalid Kind = "renewal_invalid"
	// KindPermissionDenied means authenticated but not authorized.
	KindPermissionDenied Kind = "permission_denied"
	// KindUpstreamUnavailable means a transport failure talking to the
	// backend of record.
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	// KindValidationError means a malformed request body or parameters.
	KindValidationError Kind = "validation_error"
)

// Error is the uniform error shape. Code carries the machine-readable
// sign-in failure code (e.g. "invalid-credentials", "rate-limited",
// "account-not-verified") when the backend supplied one.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Details map[string]string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NoCredential() *Error {
	return &Error{Kind: KindNoCredential, Message: "authentication required"}
}

func CredentialRejected(message string) *Error {
	if message == "" {
		message = "credential rejected"
	}
	return &Error{Kind: KindCredentialRejected, Message: message}
}

func RenewalInvalid() *Error {
	return &Error{Kind: KindRenewalInvalid, Message: "renewal credential rejected"}
}

func PermissionDenied(message string) *Error {
	if message == "" {
		message = "permission denied"
	}
	return &Error{Kind: KindPermissionDenied, Message: message}
}

func UpstreamUnavailable(err error) *Error {
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: "backend unavailable",
		Details: map[string]string{"cause": err.Error()},
	}
}

func ValidationError(message string) *Error {
	return &Error{Kind: KindValidationError, Message: message, Code: "validation-error"}
}

// KindOf extracts the kind from an error chain, or the zero Kind if the
// error is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// From returns the *Error in err's chain, or wraps err as
// KindUpstreamUnavailable so untyped errors never cross the edge raw.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return UpstreamUnavailable(err)
}

// HTTPStatus maps a kind to the status code surfaced to API callers.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNoCredential, KindCredentialRejected, KindRenewalInvalid:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindValidationError:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
