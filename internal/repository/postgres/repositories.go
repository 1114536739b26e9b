package postgres

import "github.com/pulso-rh/pulso/internal/repository"

// NewRepositories bundles all PostgreSQL-backed repositories.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Sector:       NewSectorRepository(db),
		Collaborator: NewCollaboratorRepository(db),
		Feedback:     NewFeedbackRepository(db),
	}
}
