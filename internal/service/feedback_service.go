package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// FeedbackService handles feedback entries and their aggregate statistics.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	sectorRepo   repository.SectorRepository
	collabRepo   repository.CollaboratorRepository
	logger       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	sectorRepo repository.SectorRepository,
	collabRepo repository.CollaboratorRepository,
	logger zerolog.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		sectorRepo:   sectorRepo,
		collabRepo:   collabRepo,
		logger:       logger.With().Str("service", "feedback").Logger(),
	}
}

// =============================================================================
// Input/Output Structs
// =============================================================================

// FeedbackInput contains the data for creating a feedback entry.
type FeedbackInput struct {
	ReviewerName   string
	Rating         int
	Message        *string
	SectorID       *int64
	CollaboratorID *int64
}

func (in FeedbackInput) validate() error {
	if len(in.ReviewerName) < 1 || len(in.ReviewerName) > 100 {
		return ErrInvalidReviewerName
	}
	if !domain.ValidRating(in.Rating) {
		return ErrInvalidRating
	}
	return nil
}

// UpdateFeedbackInput contains the fields for a feedback update. Nil fields
// are left unchanged.
type UpdateFeedbackInput struct {
	ReviewerName   *string
	Rating         *int
	Message        *string
	SectorID       *int64
	CollaboratorID *int64
}

func (in UpdateFeedbackInput) validate() error {
	if in.ReviewerName != nil && (len(*in.ReviewerName) < 1 || len(*in.ReviewerName) > 100) {
		return ErrInvalidReviewerName
	}
	if in.Rating != nil && !domain.ValidRating(*in.Rating) {
		return ErrInvalidRating
	}
	return nil
}

// =============================================================================
// Service Methods
// =============================================================================

// Create records a new feedback entry. Sector and collaborator links are
// optional; when present they must resolve to existing records.
func (s *FeedbackService) Create(ctx context.Context, input FeedbackInput) (*domain.Feedback, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, input.SectorID, input.CollaboratorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	f := &domain.Feedback{
		ReviewerName:   input.ReviewerName,
		Rating:         input.Rating,
		Message:        input.Message,
		SectorID:       input.SectorID,
		CollaboratorID: input.CollaboratorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		s.logger.Error().Err(err).Msg("failed to create feedback")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("feedback_id", f.ID).Int("rating", f.Rating).Msg("feedback created")

	return f, nil
}

// List returns all feedback entries, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]*domain.Feedback, error) {
	feedbacks, err := s.feedbackRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list feedbacks")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return feedbacks, nil
}

// Get returns a feedback entry by ID.
func (s *FeedbackService) Get(ctx context.Context, id int64) (*domain.Feedback, error) {
	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrFeedbackNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		s.logger.Error().Err(err).Int64("feedback_id", id).Msg("failed to get feedback")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return f, nil
}

// Update applies a partial update to a feedback entry. Only the supplied
// fields are overwritten; unsent links stay in place.
func (s *FeedbackService) Update(ctx context.Context, id int64, input UpdateFeedbackInput) (*domain.Feedback, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, input.SectorID, input.CollaboratorID); err != nil {
		return nil, err
	}

	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrFeedbackNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		s.logger.Error().Err(err).Int64("feedback_id", id).Msg("failed to get feedback for update")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if input.ReviewerName != nil {
		f.ReviewerName = *input.ReviewerName
	}
	if input.Rating != nil {
		f.Rating = *input.Rating
	}
	if input.Message != nil {
		f.Message = input.Message
	}
	if input.SectorID != nil {
		f.SectorID = input.SectorID
	}
	if input.CollaboratorID != nil {
		f.CollaboratorID = input.CollaboratorID
	}
	f.UpdatedAt = time.Now().UTC()

	if err := s.feedbackRepo.Update(ctx, f); err != nil {
		if errors.Is(err, domain.ErrFeedbackNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		s.logger.Error().Err(err).Int64("feedback_id", id).Msg("failed to update feedback")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return f, nil
}

// Delete removes a feedback entry.
func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrFeedbackNotFound) {
			return domain.ErrFeedbackNotFound
		}
		s.logger.Error().Err(err).Int64("feedback_id", id).Msg("failed to delete feedback")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("feedback_id", id).Msg("feedback deleted")

	return nil
}

// Stats returns the global feedback statistics. The average is formatted
// with two decimals and the distribution is zero-filled for every rating
// value so clients can render a complete histogram.
func (s *FeedbackService) Stats(ctx context.Context) (*domain.FeedbackStats, error) {
	total, err := s.feedbackRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count feedbacks for stats")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	avg, err := s.feedbackRepo.AverageRating(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute average for stats")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	dist, err := s.feedbackRepo.RatingDistribution(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute distribution for stats")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	filled := make(map[int]int64, domain.MaxRating)
	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		filled[r] = dist[r]
	}

	return &domain.FeedbackStats{
		Total:              total,
		AverageRating:      fmt.Sprintf("%.2f", avg),
		RatingDistribution: filled,
	}, nil
}

// checkLinks verifies optional sector and collaborator references.
func (s *FeedbackService) checkLinks(ctx context.Context, sectorID, collaboratorID *int64) error {
	if sectorID != nil {
		if _, err := s.sectorRepo.GetByID(ctx, *sectorID); err != nil {
			if errors.Is(err, domain.ErrSectorNotFound) {
				return domain.ErrSectorNotFound
			}
			s.logger.Error().Err(err).Int64("sector_id", *sectorID).Msg("failed to check feedback sector")
			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}
	}
	if collaboratorID != nil {
		if _, err := s.collabRepo.GetByID(ctx, *collaboratorID); err != nil {
			if errors.Is(err, domain.ErrCollaboratorNotFound) {
				return domain.ErrCollaboratorNotFound
			}
			s.logger.Error().Err(err).Int64("collaborator_id", *collaboratorID).Msg("failed to check feedback collaborator")
			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}
	}
	return nil
}
