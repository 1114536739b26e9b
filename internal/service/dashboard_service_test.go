package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/domain"
)

func addFeedback(repo *MockFeedbackRepository, sectorID int64, rating int, createdAt time.Time) {
	sid := sectorID
	_ = repo.Create(context.Background(), &domain.Feedback{
		ReviewerName: "Ana",
		Rating:       rating,
		SectorID:     &sid,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
}

func TestDashboardService_TeamSize(t *testing.T) {
	users := NewMockUserRepository()

	active := domain.NewUser("A", "a@empresa.com", "hash", 1)
	_ = users.Create(context.Background(), active)
	inactive := domain.NewUser("B", "b@empresa.com", "hash", 1)
	inactive.Active = false
	_ = users.Create(context.Background(), inactive)
	other := domain.NewUser("C", "c@empresa.com", "hash", 2)
	_ = users.Create(context.Background(), other)

	svc := NewDashboardService(users, NewMockFeedbackRepository(), zerolog.Nop())

	count, err := svc.TeamSize(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 active user in sector 1, got %d", count)
	}
}

func TestDashboardService_AverageRating(t *testing.T) {
	feedbacks := NewMockFeedbackRepository()
	now := time.Now()

	// Sector 1: ratings 5, 4, 4 -> 4.333... -> 4.33
	addFeedback(feedbacks, 1, 5, now)
	addFeedback(feedbacks, 1, 4, now)
	addFeedback(feedbacks, 1, 4, now)
	// Sector 2 noise.
	addFeedback(feedbacks, 2, 1, now)

	svc := NewDashboardService(NewMockUserRepository(), feedbacks, zerolog.Nop())

	avg, err := svc.AverageRating(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 4.33 {
		t.Errorf("expected 4.33, got %v", avg)
	}

	// A sector with no feedback averages to zero.
	avg, err = svc.AverageRating(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 0 {
		t.Errorf("expected 0 for empty sector, got %v", avg)
	}
}

func TestDashboardService_AverageRatingThisMonth(t *testing.T) {
	feedbacks := NewMockFeedbackRepository()

	// Pin "now" so month boundaries are deterministic.
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	addFeedback(feedbacks, 1, 5, now)                     // in window
	addFeedback(feedbacks, 1, 3, now.AddDate(0, 0, -10))  // in window (Mar 5)
	addFeedback(feedbacks, 1, 1, now.AddDate(0, -1, 0))   // previous month
	addFeedback(feedbacks, 1, 1, now.AddDate(0, 1, 0))    // next month
	addFeedback(feedbacks, 2, 5, now)                     // other sector

	svc := NewDashboardService(NewMockUserRepository(), feedbacks, zerolog.Nop())
	svc.now = func() time.Time { return now }

	avg, err := svc.AverageRatingThisMonth(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (5+3)/2 = 4
	if avg != 4 {
		t.Errorf("expected 4, got %v", avg)
	}
}

func TestDashboardService_GetOverview(t *testing.T) {
	users := NewMockUserRepository()
	feedbacks := NewMockFeedbackRepository()

	u := domain.NewUser("A", "a@empresa.com", "hash", 1)
	_ = users.Create(context.Background(), u)

	now := time.Now()
	addFeedback(feedbacks, 1, 5, now)
	addFeedback(feedbacks, 1, 2, now)

	svc := NewDashboardService(users, feedbacks, zerolog.Nop())

	overview, err := svc.GetOverview(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.TeamSize != 1 {
		t.Errorf("expected team size 1, got %d", overview.TeamSize)
	}
	if overview.TotalFeedbacks != 2 {
		t.Errorf("expected 2 feedbacks, got %d", overview.TotalFeedbacks)
	}
	if overview.AverageRating != 3.5 {
		t.Errorf("expected average 3.5, got %v", overview.AverageRating)
	}
	if overview.AverageRatingThisMonth != 3.5 {
		t.Errorf("expected month average 3.5, got %v", overview.AverageRatingThisMonth)
	}
}

func TestMonthBounds(t *testing.T) {
	now := time.Date(2025, time.January, 31, 23, 30, 0, 0, time.UTC)
	from, to := monthBounds(now)

	if !from.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected month start: %v", from)
	}
	if !to.Equal(time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("unexpected month end: %v", to)
	}
	if to.Month() != time.January {
		t.Errorf("month end leaked into %v", to.Month())
	}
}
