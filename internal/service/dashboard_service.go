package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/repository"
)

// DashboardService computes the sector-scoped aggregates behind the
// authenticated dashboard. All numbers come straight from SQL aggregates;
// nothing is cached, so the dashboard always reflects the current data.
type DashboardService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
	logger       zerolog.Logger

	// now is swappable in tests that pin the month window.
	now func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	userRepo repository.UserRepository,
	feedbackRepo repository.FeedbackRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger.With().Str("service", "dashboard").Logger(),
		now:          time.Now,
	}
}

// Overview holds the combined dashboard payload for a sector.
type Overview struct {
	// TeamSize is the number of active user accounts in the sector.
	TeamSize int64 `json:"totalColaboradores"`

	// TotalFeedbacks is the number of feedback entries tied to the sector.
	TotalFeedbacks int64 `json:"totalFeedbacks"`

	// AverageRating is the sector's all-time mean rating, rounded to two
	// decimals, 0 when the sector has no feedback.
	AverageRating float64 `json:"mediaEstrelas"`

	// AverageRatingThisMonth is the mean rating over entries created in
	// the current calendar month (server-local time).
	AverageRatingThisMonth float64 `json:"mediaEstrelasMes"`
}

// TeamSize counts the active user accounts in a sector.
func (s *DashboardService) TeamSize(ctx context.Context, sectorID int64) (int64, error) {
	count, err := s.userRepo.CountActiveBySector(ctx, sectorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("sector_id", sectorID).Msg("failed to count sector team")
		return 0, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return count, nil
}

// CountFeedbacks counts the feedback entries tied to a sector.
func (s *DashboardService) CountFeedbacks(ctx context.Context, sectorID int64) (int64, error) {
	count, err := s.feedbackRepo.CountBySector(ctx, sectorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("sector_id", sectorID).Msg("failed to count sector feedbacks")
		return 0, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return count, nil
}

// AverageRating returns the sector's all-time mean rating rounded to two
// decimals, 0 when the sector has no feedback.
func (s *DashboardService) AverageRating(ctx context.Context, sectorID int64) (float64, error) {
	avg, err := s.feedbackRepo.AverageRatingBySector(ctx, sectorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("sector_id", sectorID).Msg("failed to compute sector average")
		return 0, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return round2(avg), nil
}

// AverageRatingThisMonth returns the sector's mean rating over entries
// created in the current calendar month, using server-local month bounds.
func (s *DashboardService) AverageRatingThisMonth(ctx context.Context, sectorID int64) (float64, error) {
	from, to := monthBounds(s.now())

	avg, err := s.feedbackRepo.AverageRatingBySectorBetween(ctx, sectorID, from, to)
	if err != nil {
		s.logger.Error().Err(err).Int64("sector_id", sectorID).Msg("failed to compute monthly sector average")
		return 0, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return round2(avg), nil
}

// GetOverview assembles the full dashboard payload for a sector.
func (s *DashboardService) GetOverview(ctx context.Context, sectorID int64) (*Overview, error) {
	teamSize, err := s.TeamSize(ctx, sectorID)
	if err != nil {
		return nil, err
	}

	totalFeedbacks, err := s.CountFeedbacks(ctx, sectorID)
	if err != nil {
		return nil, err
	}

	avg, err := s.AverageRating(ctx, sectorID)
	if err != nil {
		return nil, err
	}

	monthAvg, err := s.AverageRatingThisMonth(ctx, sectorID)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TeamSize:               teamSize,
		TotalFeedbacks:         totalFeedbacks,
		AverageRating:          avg,
		AverageRatingThisMonth: monthAvg,
	}, nil
}

// monthBounds returns the inclusive bounds of t's calendar month in t's
// location.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
