// Package apperr classifies failures into the kinds the HTTP surface reports
// and writes them as JSON error bodies.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/umakantv/go-utils/errs"
)

// Kind identifies how a failure is reported to the client.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "unexpected"
	}
}

// Status returns the HTTP status for the kind. Upstream and unexpected
// failures are reported as 404, matching the behaviour clients of this API
// already depend on.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusNotFound
	}
}

// Error is a classified failure. Message is safe to show to clients; Err is
// the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: KindAuthorization, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }

// Upstream reports a failed call to an external provider. The upstream
// message is passed through to the client.
func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: err.Error(), Err: err}
}

// Wrap classifies err under kind with a client-facing message.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindUnexpected if err was never
// classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// StatusOf returns the HTTP status err is reported with.
func StatusOf(err error) int {
	return KindOf(err).Status()
}

// MessageOf returns the client-facing message for err. Unclassified errors
// never leak their text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Unexpected error"
}

// Write sets the status for err and encodes it as a JSON error body. The
// body Code always equals the response status.
func Write(w http.ResponseWriter, err error) {
	msg := MessageOf(err)
	status := StatusOf(err)

	var body *errs.AppError
	switch KindOf(err) {
	case KindValidation:
		body = errs.NewValidationError(msg)
	case KindAuthentication:
		body = errs.NewAuthenticationError(msg)
	case KindAuthorization:
		body = errs.NewAuthorizationError(msg)
	case KindNotFound, KindUpstream:
		body = errs.NewNotFoundError(msg)
	default:
		body = errs.NewInternalServerError(msg)
	}
	body.Code = status

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
