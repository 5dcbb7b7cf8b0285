package types

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failure in the generation chain
type ErrorKind string

const (
	// KindInvalidInput is client-correctable and always maps to HTTP 400
	KindInvalidInput ErrorKind = "invalid_input"
	// KindUpstreamFailure covers downstream stage or provider failures, HTTP 500
	KindUpstreamFailure ErrorKind = "upstream_failure"
)

// GenerationError is created at the first failure and wrapped, not replaced,
// as it travels back up the chain.
type GenerationError struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// NewInvalidInput builds a 400 error with the given message
func NewInvalidInput(message string) *GenerationError {
	return &GenerationError{
		Kind:       KindInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUpstreamFailure builds a 500 error that keeps cause reachable via errors.As
func NewUpstreamFailure(message string, cause error) *GenerationError {
	return &GenerationError{
		Kind:       KindUpstreamFailure,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// AsGenerationError returns the outermost GenerationError in err's chain
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err; unknown errors are 500
func StatusOf(err error) int {
	if genErr, ok := AsGenerationError(err); ok && genErr.HTTPStatus != 0 {
		return genErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsInvalidInput reports whether err carries KindInvalidInput at its outermost level
func IsInvalidInput(err error) bool {
	genErr, ok := AsGenerationError(err)
	return ok && genErr.Kind == KindInvalidInput
}
