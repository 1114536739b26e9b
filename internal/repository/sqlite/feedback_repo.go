package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// feedbackRepository implements repository.FeedbackRepository for SQLite.
// Aggregates run as SQL so they stay consistent under concurrent writes.
type feedbackRepository struct {
	db *DB
}

// NewFeedbackRepository creates a new SQLite feedback repository.
func NewFeedbackRepository(db *DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

const feedbackColumns = `id, nome_avaliador, estrelas, mensagem, setor_id, colaborador_id, created_at, updated_at`

// Create creates a new feedback entry.
func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (nome_avaliador, estrelas, mensagem, setor_id, colaborador_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		f.ReviewerName,
		f.Rating,
		f.Message,
		f.SectorID,
		f.CollaboratorID,
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	f.ID = id

	return nil
}

// GetByID retrieves a feedback entry by ID.
func (r *feedbackRepository) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks WHERE id = ?`

	f, err := scanFeedback(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return f, nil
}

// List returns all feedback entries, newest first.
func (r *feedbackRepository) List(ctx context.Context) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]*domain.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedbacks: %w", err)
	}

	return feedbacks, nil
}

// Update updates an existing feedback entry.
func (r *feedbackRepository) Update(ctx context.Context, f *domain.Feedback) error {
	query := `
		UPDATE feedbacks
		SET nome_avaliador = ?, estrelas = ?, mensagem = ?, setor_id = ?, colaborador_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		f.ReviewerName,
		f.Rating,
		f.Message,
		f.SectorID,
		f.CollaboratorID,
		formatTime(f.UpdatedAt),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrFeedbackNotFound
	}

	return nil
}

// Delete physically deletes a feedback entry.
func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM feedbacks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrFeedbackNotFound
	}

	return nil
}

// Count returns the total number of feedback entries.
func (r *feedbackRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedbacks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedbacks: %w", err)
	}
	return count, nil
}

// AverageRating returns the mean rating over all entries, 0 when empty.
func (r *feedbackRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(AVG(estrelas), 0) FROM feedbacks`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}

// RatingDistribution returns per-rating counts. Only ratings that occur
// appear in the map.
func (r *feedbackRepository) RatingDistribution(ctx context.Context) (map[int]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT estrelas, COUNT(*) FROM feedbacks GROUP BY estrelas`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[int]int64)
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating distribution: %w", err)
		}
		dist[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rating distribution: %w", err)
	}

	return dist, nil
}

// CountBySector returns the number of entries tied to a sector.
func (r *feedbackRepository) CountBySector(ctx context.Context, sectorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedbacks WHERE setor_id = ?`,
		sectorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedbacks by sector: %w", err)
	}
	return count, nil
}

// AverageRatingBySector returns the sector mean rating, 0 when the sector
// has no entries.
func (r *feedbackRepository) AverageRatingBySector(ctx context.Context, sectorID int64) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(estrelas), 0) FROM feedbacks WHERE setor_id = ?`,
		sectorID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute sector average rating: %w", err)
	}
	return avg, nil
}

// AverageRatingBySectorBetween returns the sector mean rating over entries
// created within [from, to]. Timestamps are stored as RFC3339 UTC strings,
// so the bounds compare correctly as strings.
func (r *feedbackRepository) AverageRatingBySectorBetween(ctx context.Context, sectorID int64, from, to time.Time) (float64, error) {
	var avg float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(estrelas), 0) FROM feedbacks WHERE setor_id = ? AND created_at >= ? AND created_at <= ?`,
		sectorID,
		formatTime(from),
		formatTime(to),
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute windowed sector average: %w", err)
	}
	return avg, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFeedback(s scanner) (*domain.Feedback, error) {
	f := &domain.Feedback{}
	var message sql.NullString
	var sectorID, collaboratorID sql.NullInt64
	var created, updated string

	err := s.Scan(
		&f.ID,
		&f.ReviewerName,
		&f.Rating,
		&message,
		&sectorID,
		&collaboratorID,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	f.Message = scanNullString(message)
	if sectorID.Valid {
		f.SectorID = &sectorID.Int64
	}
	if collaboratorID.Valid {
		f.CollaboratorID = &collaboratorID.Int64
	}
	f.CreatedAt = parseTime(created)
	f.UpdatedAt = parseTime(updated)

	return f, nil
}

var _ repository.FeedbackRepository = (*feedbackRepository)(nil)
