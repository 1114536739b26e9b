package domain

import "time"

// Rating bounds for feedback entries.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback represents a star rating with an optional comment, optionally
// tied to a sector and/or a collaborator. The reviewer name is free text and
// deliberately not linked to a User account.
type Feedback struct {
	// ID is the unique identifier for the feedback entry (auto-generated).
	ID int64 `json:"id"`

	// ReviewerName is the display name of the reviewer.
	// Constraints: 1-100 characters.
	ReviewerName string `json:"NomeAvaliador"`

	// Rating is the star rating. Invariant: MinRating <= Rating <= MaxRating.
	Rating int `json:"Estrelas"`

	// Message is an optional free-text comment.
	Message *string `json:"Mensagem"`

	// SectorID optionally ties the feedback to a sector.
	SectorID *int64 `json:"setorId"`

	// CollaboratorID optionally ties the feedback to a rated collaborator.
	CollaboratorID *int64 `json:"colaboradorId"`

	// CreatedAt is the creation timestamp. It drives the month-windowed
	// dashboard aggregations.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the entry was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidRating reports whether r is inside the accepted rating range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// FeedbackStats holds the aggregate statistics over all feedback entries.
type FeedbackStats struct {
	// Total is the number of feedback entries.
	Total int64 `json:"total"`

	// AverageRating is the mean rating formatted with two decimal places
	// ("0.00" when there are no entries).
	AverageRating string `json:"mediaEstrelas"`

	// RatingDistribution maps each rating value 1..5 to its count,
	// zero-filled for ratings with no entries.
	RatingDistribution map[int]int64 `json:"distribuicaoEstrelas"`
}
