package service

import "errors"

// Sentinel errors returned by services. Handlers map them to HTTP statuses:
// ErrNotFound → 404, ErrInvalidArgument → 400, ErrInsufficientStock → 409.
// Services wrap them with context via fmt.Errorf("...: %w", Err...).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("invalid credentials")
)
