// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned during login when email or password is invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a verification or reset token fails
	// cryptographic validation or has expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrTokenUsed is returned when a reset token's single-use marker is
	// gone: the token was already redeemed or its marker expired.
	ErrTokenUsed = errors.New("token invalid or used")
)
