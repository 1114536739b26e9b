// Package service provides business logic services for Pulso.
package service

import "errors"

// Common service errors.
var (
	// Validation errors
	ErrNameRequired        = errors.New("invalid name: must be 1-100 characters")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("invalid password: must be at least 6 characters")
	ErrSectorRequired      = errors.New("sector is required")
	ErrInvalidIdentNumber  = errors.New("invalid identification number: must be 1-50 characters")
	ErrInvalidFullName     = errors.New("invalid full name: must be 1-255 characters")
	ErrInvalidReviewerName = errors.New("invalid reviewer name: must be 1-100 characters")
	ErrInvalidRating       = errors.New("invalid rating: must be between 1 and 5")
	ErrDescriptionTooLong  = errors.New("invalid description: must be at most 500 characters")

	// Login throttling
	ErrTooManyAttempts = errors.New("too many login attempts, try again later")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
