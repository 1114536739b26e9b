// Package repository provides the data access layer for Pulso.
// This file contains the aggregate types shared by the driver-specific
// backends; the concrete constructors live in the sqlite and postgres
// subpackages and are selected by the caller based on configuration.
package repository

import "context"

// Repositories holds all repository instances.
type Repositories struct {
	User         UserRepository
	Sector       SectorRepository
	Collaborator CollaboratorRepository
	Feedback     FeedbackRepository
}

// DatabaseHealth is an interface for database lifecycle and health checks.
// Both backends' DB handles satisfy it; the server owns exactly one handle,
// opened at startup and closed at shutdown.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}
