package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Ledger errors
var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrKeyNotFound           = errors.New("key not found")
	ErrPersonNotFound        = errors.New("person not found")
	ErrAuthorizationNotFound = errors.New("authorization not found")
	ErrBorrowingNotFound     = errors.New("borrowing not found")

	// ErrKeyAlreadyBorrowed is returned when a borrowing is requested for a
	// key that still has an open borrowing.
	ErrKeyAlreadyBorrowed = errors.New("key already borrowed")

	// ErrAlreadyReturned is returned when a borrowing is closed twice.
	ErrAlreadyReturned = errors.New("borrowing already returned")

	// ErrSearchExpression is returned for search expressions with more than
	// two whitespace tokens. Two-word full-name search is the supported
	// maximum.
	ErrSearchExpression = errors.New("unsupported search expression")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
)
