package lib

import (
	"errors"
	"freshcatch_server/database"
)

// Database errors
var (
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrRestricted = errors.New("restricted by existing references")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
)

// Order errors
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// MapDBError converts raw driver errors into the sentinel errors handlers
// switch on. Unknown errors pass through unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	switch database.SQLState(err) {
	case "23505": // unique_violation
		return ErrConflict
	case "23503", "23001": // foreign_key_violation, restrict_violation
		return ErrRestricted
	case "P0002": // no_data_found
		return ErrNotFound
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
