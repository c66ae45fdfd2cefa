package service

import "errors"

// Error messages double as the HTTP response bodies, so they stay caller-facing.
var (
	ErrStockNotProvided   = errors.New("stock value not provided")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
