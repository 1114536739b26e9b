// Package repository defines data access interfaces for Pulso.
// These interfaces abstract database operations, allowing for different
// implementations (SQLite, PostgreSQL, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"
	"time"

	"github.com/pulso-rh/pulso/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID, with its sector populated.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetActiveWithSector retrieves an active user joined to an active
	// sector. This is the lookup the auth middleware performs on every
	// protected request; deactivating the user or its sector makes it
	// return domain.ErrUserNotFound immediately.
	GetActiveWithSector(ctx context.Context, id int64) (*domain.User, error)

	// GetActiveByEmail retrieves an active user by lowercased email,
	// joined to an active sector. Used for login.
	GetActiveByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail checks if any user (active or not) has the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CountActiveBySector returns the number of active users in a sector.
	CountActiveBySector(ctx context.Context, sectorID int64) (int64, error)
}

// =============================================================================
// Sector Repository
// =============================================================================

// SectorRepository defines the interface for sector data access.
type SectorRepository interface {
	// Create creates a new sector.
	Create(ctx context.Context, sector *domain.Sector) error

	// GetByID retrieves a sector by ID, active or not.
	GetByID(ctx context.Context, id int64) (*domain.Sector, error)

	// GetActiveByID retrieves a sector by ID only if it is active.
	GetActiveByID(ctx context.Context, id int64) (*domain.Sector, error)

	// ListActive returns all active sectors ordered by name ascending.
	ListActive(ctx context.Context) ([]*domain.Sector, error)

	// Update updates an existing sector.
	Update(ctx context.Context, sector *domain.Sector) error
}

// =============================================================================
// Collaborator Repository
// =============================================================================

// CollaboratorRepository defines the interface for collaborator data access.
type CollaboratorRepository interface {
	// Create creates a new collaborator.
	Create(ctx context.Context, c *domain.Collaborator) error

	// GetByID retrieves a collaborator by ID.
	GetByID(ctx context.Context, id int64) (*domain.Collaborator, error)

	// List returns all collaborators ordered by full name ascending.
	List(ctx context.Context) ([]*domain.Collaborator, error)

	// Update updates an existing collaborator.
	Update(ctx context.Context, c *domain.Collaborator) error

	// Delete physically deletes a collaborator by ID.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of collaborators.
	Count(ctx context.Context) (int64, error)
}

// =============================================================================
// Feedback Repository
// =============================================================================

// FeedbackRepository defines the interface for feedback data access,
// including the aggregate queries that feed the dashboard. Averages are
// computed by the store (AVG), never loaded-and-reduced in Go, so they stay
// correct under concurrent writes.
type FeedbackRepository interface {
	// Create creates a new feedback entry.
	Create(ctx context.Context, f *domain.Feedback) error

	// GetByID retrieves a feedback entry by ID.
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)

	// List returns all feedback entries ordered by creation time descending.
	List(ctx context.Context) ([]*domain.Feedback, error)

	// Update updates an existing feedback entry.
	Update(ctx context.Context, f *domain.Feedback) error

	// Delete physically deletes a feedback entry by ID.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of feedback entries.
	Count(ctx context.Context) (int64, error)

	// AverageRating returns the mean rating over all entries, 0 when empty.
	AverageRating(ctx context.Context) (float64, error)

	// RatingDistribution returns the per-rating counts over all entries.
	// Ratings with no entries are absent from the map; callers zero-fill.
	RatingDistribution(ctx context.Context) (map[int]int64, error)

	// CountBySector returns the number of entries tied to a sector.
	CountBySector(ctx context.Context, sectorID int64) (int64, error)

	// AverageRatingBySector returns the mean rating over a sector's
	// entries, 0 when the sector has none.
	AverageRatingBySector(ctx context.Context, sectorID int64) (float64, error)

	// AverageRatingBySectorBetween returns the mean rating over a sector's
	// entries created within [from, to], 0 when there are none.
	AverageRatingBySectorBetween(ctx context.Context, sectorID int64, from, to time.Time) (float64, error)
}
