// Package common defines shared constants and sentinel errors used across
// FlowSpace components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already registered")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrorInvalidCredentials = errors.New("incorrect email or password")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorLogoutFailed       = errors.New("logout failed")

	// Token lifecycle errors. All of them collapse to ErrorUnauthorized at
	// the transport boundary; the distinction exists for logs and tests.
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenRevoked          = errors.New("token revoked")
)
