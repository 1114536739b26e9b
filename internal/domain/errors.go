// Package domain contains the core business entities for Pulso.
package domain

import "errors"

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailInUse indicates a user with the same email already exists.
	ErrEmailInUse = errors.New("email already in use")

	// ErrInvalidCredentials indicates authentication failed. The message is
	// deliberately generic: callers must not learn whether the email or the
	// password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ===========================================
	// Sector Errors
	// ===========================================

	// ErrSectorNotFound indicates the requested sector does not exist.
	ErrSectorNotFound = errors.New("sector not found")

	// ErrSectorNameInUse indicates a sector with the same name exists,
	// active or not.
	ErrSectorNameInUse = errors.New("sector name already in use")

	// ErrSectorInUse indicates the sector still has active users and
	// cannot be deactivated.
	ErrSectorInUse = errors.New("sector has active users")

	// ErrSectorInvalid indicates a referenced sector is missing or
	// deactivated and cannot receive new users. Unlike ErrSectorNotFound
	// it is a bad-reference error, not a lookup miss.
	ErrSectorInvalid = errors.New("invalid or inactive sector")

	// ===========================================
	// Collaborator Errors
	// ===========================================

	// ErrCollaboratorNotFound indicates the requested collaborator does not exist.
	ErrCollaboratorNotFound = errors.New("collaborator not found")

	// ErrCollaboratorExists indicates a collaborator with the same
	// identification number or email already exists.
	ErrCollaboratorExists = errors.New("collaborator already exists")

	// ===========================================
	// Feedback Errors
	// ===========================================

	// ErrFeedbackNotFound indicates the requested feedback entry does not exist.
	ErrFeedbackNotFound = errors.New("feedback not found")
)
