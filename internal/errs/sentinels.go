// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Auth sentinels, produced by the token service and auth middleware.
var (
	// ErrMissingToken indicates the Authorization header is absent or not a Bearer token.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken indicates a signature or format failure during token verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token's expiry timestamp has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrInsufficientRole indicates a valid principal lacking the required role.
	ErrInsufficientRole = errors.New("insufficient role")
)

// Data sentinels, produced by the store layer.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock indicates a reduce would take an inventory amount below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConstraintViolation indicates a uniqueness or foreign-key failure.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrTransactionFailed indicates a transaction could not begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")
)
