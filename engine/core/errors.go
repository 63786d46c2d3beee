package core

import (
	"errors"
	"fmt"
)

// Error taxonomy (router maps to HTTP later)
var (
	// ErrMissingCredential is returned when no bearer credential is presented.
	ErrMissingCredential = errors.New("se requiere autenticación")
	// ErrBadCredential is returned when the presented credential does not
	// match the configured secret.
	ErrBadCredential = errors.New("token de autorización inválido")
	// ErrInvalidInput is returned when a request field fails validation
	// before any upstream call is made.
	ErrInvalidInput = errors.New("invalid input")
)

// UpstreamError reports a failed completion call. It is fatal for the
// request; no retry and no webhook dispatch happen after it.
type UpstreamError struct {
	Detail string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Error en Groq: %s", e.Detail)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps an upstream failure with its human-readable detail.
func NewUpstreamError(err error) *UpstreamError {
	return &UpstreamError{Detail: err.Error(), Err: err}
}
