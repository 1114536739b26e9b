package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/domain"
)

func newTestFeedbackService(feedbacks *MockFeedbackRepository, sectors *MockSectorRepository, collabs *MockCollaboratorRepository) *FeedbackService {
	if feedbacks == nil {
		feedbacks = NewMockFeedbackRepository()
	}
	if sectors == nil {
		sectors = NewMockSectorRepository()
	}
	if collabs == nil {
		collabs = NewMockCollaboratorRepository()
	}
	return NewFeedbackService(feedbacks, sectors, collabs, zerolog.Nop())
}

func TestFeedbackService_Create(t *testing.T) {
	sectorID := int64(1)
	unknownSector := int64(99)
	unknownCollab := int64(99)

	tests := []struct {
		name    string
		input   FeedbackInput
		setup   func(*MockSectorRepository, *MockCollaboratorRepository)
		wantErr error
	}{
		{
			name:  "success minimal",
			input: FeedbackInput{ReviewerName: "Ana", Rating: 5},
		},
		{
			name:  "success with sector link",
			input: FeedbackInput{ReviewerName: "Ana", Rating: 4, SectorID: &sectorID},
			setup: func(sectors *MockSectorRepository, _ *MockCollaboratorRepository) {
				addSector(sectors, "RH", true)
			},
		},
		{
			name:    "missing reviewer",
			input:   FeedbackInput{Rating: 3},
			wantErr: ErrInvalidReviewerName,
		},
		{
			name:    "rating too low",
			input:   FeedbackInput{ReviewerName: "Ana", Rating: 0},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "rating too high",
			input:   FeedbackInput{ReviewerName: "Ana", Rating: 6},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "unknown sector link",
			input:   FeedbackInput{ReviewerName: "Ana", Rating: 4, SectorID: &unknownSector},
			wantErr: domain.ErrSectorNotFound,
		},
		{
			name:    "unknown collaborator link",
			input:   FeedbackInput{ReviewerName: "Ana", Rating: 4, CollaboratorID: &unknownCollab},
			wantErr: domain.ErrCollaboratorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sectors := NewMockSectorRepository()
			collabs := NewMockCollaboratorRepository()
			if tt.setup != nil {
				tt.setup(sectors, collabs)
			}

			svc := newTestFeedbackService(nil, sectors, collabs)

			f, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.ID == 0 {
				t.Error("expected assigned feedback ID")
			}
			if f.CreatedAt.IsZero() || f.UpdatedAt.IsZero() {
				t.Error("expected timestamps to be set")
			}
		})
	}
}

func TestFeedbackService_Stats(t *testing.T) {
	feedbacks := NewMockFeedbackRepository()
	svc := newTestFeedbackService(feedbacks, nil, nil)

	// Empty store: "0.00" average, zero-filled distribution.
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("expected total 0, got %d", stats.Total)
	}
	if stats.AverageRating != "0.00" {
		t.Errorf("expected average \"0.00\", got %q", stats.AverageRating)
	}
	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		if count, ok := stats.RatingDistribution[r]; !ok || count != 0 {
			t.Errorf("expected zero-filled distribution at %d, got %d (present=%v)", r, count, ok)
		}
	}

	for _, rating := range []int{5, 4, 4, 1} {
		if _, err := svc.Create(context.Background(), FeedbackInput{ReviewerName: "Ana", Rating: rating}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	stats, err = svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("expected total 4, got %d", stats.Total)
	}
	// (5+4+4+1)/4 = 3.5
	if stats.AverageRating != "3.50" {
		t.Errorf("expected average \"3.50\", got %q", stats.AverageRating)
	}
	want := map[int]int64{1: 1, 2: 0, 3: 0, 4: 2, 5: 1}
	for r, expected := range want {
		if stats.RatingDistribution[r] != expected {
			t.Errorf("distribution[%d]: expected %d, got %d", r, expected, stats.RatingDistribution[r])
		}
	}
}

func TestFeedbackService_UpdateAndDelete(t *testing.T) {
	svc := newTestFeedbackService(nil, nil, nil)

	f, err := svc.Create(context.Background(), FeedbackInput{ReviewerName: "Ana", Rating: 2})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newName := "Ana Paula"
	newRating := 4
	updated, err := svc.Update(context.Background(), f.ID, UpdateFeedbackInput{ReviewerName: &newName, Rating: &newRating})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 4 || updated.ReviewerName != "Ana Paula" {
		t.Errorf("unexpected updated entry: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), 999, UpdateFeedbackInput{ReviewerName: &newName}); !errors.Is(err, domain.ErrFeedbackNotFound) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}

	badRating := 9
	if _, err := svc.Update(context.Background(), f.ID, UpdateFeedbackInput{Rating: &badRating}); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("expected invalid rating error, got %v", err)
	}

	if err := svc.Delete(context.Background(), f.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), f.ID); !errors.Is(err, domain.ErrFeedbackNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestFeedbackService_PartialUpdateKeepsLinks(t *testing.T) {
	sectors := NewMockSectorRepository()
	sector := addSector(sectors, "RH", true)
	svc := newTestFeedbackService(nil, sectors, nil)

	msg := "ótimo trabalho"
	f, err := svc.Create(context.Background(), FeedbackInput{
		ReviewerName: "Ana",
		Rating:       3,
		Message:      &msg,
		SectorID:     &sector.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A rating-only update must not clear the message or the sector link.
	newRating := 5
	updated, err := svc.Update(context.Background(), f.ID, UpdateFeedbackInput{Rating: &newRating})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 5 {
		t.Errorf("expected rating 5, got %d", updated.Rating)
	}
	if updated.Message == nil || *updated.Message != msg {
		t.Errorf("expected message preserved, got %v", updated.Message)
	}
	if updated.SectorID == nil || *updated.SectorID != sector.ID {
		t.Errorf("expected sector link preserved, got %v", updated.SectorID)
	}
	if updated.ReviewerName != "Ana" {
		t.Errorf("expected reviewer name preserved, got %s", updated.ReviewerName)
	}
}
