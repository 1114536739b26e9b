package auth

import "errors"

// Authentication errors returned by the token issuer and middleware.
var (
	// ErrMissingToken indicates the Authorization header is absent or malformed.
	ErrMissingToken = errors.New("access token not provided")

	// ErrInvalidToken indicates the token failed signature or claims validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrUserNotFound indicates the token's subject no longer resolves to an
	// active user in an active sector.
	ErrUserNotFound = errors.New("invalid token or inactive user")
)
