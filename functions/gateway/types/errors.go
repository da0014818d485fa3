package types

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAuthentication      = errors.New("authentication failed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidTransition   = errors.New("invalid registration transition")
	ErrInvalidInput        = errors.New("invalid input")
	// ErrTransient marks failures the caller may retry: lock timeouts,
	// serialization failures, an unreachable store.
	ErrTransient = errors.New("store temporarily unavailable")
)
