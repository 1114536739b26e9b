package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// collaboratorRepository implements repository.CollaboratorRepository.
type collaboratorRepository struct {
	db *DB
}

// NewCollaboratorRepository creates a new PostgreSQL collaborator repository.
func NewCollaboratorRepository(db *DB) repository.CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

// Create creates a new collaborator.
func (r *collaboratorRepository) Create(ctx context.Context, c *domain.Collaborator) error {
	query := `
		INSERT INTO colaboradores (numeroidentificacao, nomecompleto, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		c.IdentificationNumber,
		c.FullName,
		c.Email,
	).Scan(&c.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCollaboratorExists
		}
		return fmt.Errorf("failed to create collaborator: %w", err)
	}

	return nil
}

// GetByID retrieves a collaborator by ID.
func (r *collaboratorRepository) GetByID(ctx context.Context, id int64) (*domain.Collaborator, error) {
	query := `SELECT id, numeroidentificacao, nomecompleto, email FROM colaboradores WHERE id = $1`

	c := &domain.Collaborator{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.IdentificationNumber,
		&c.FullName,
		&c.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("failed to get collaborator: %w", err)
	}

	return c, nil
}

// List returns all collaborators ordered by full name.
func (r *collaboratorRepository) List(ctx context.Context) ([]*domain.Collaborator, error) {
	query := `SELECT id, numeroidentificacao, nomecompleto, email FROM colaboradores ORDER BY nomecompleto ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	defer rows.Close()

	collaborators := make([]*domain.Collaborator, 0)
	for rows.Next() {
		c := &domain.Collaborator{}
		if err := rows.Scan(&c.ID, &c.IdentificationNumber, &c.FullName, &c.Email); err != nil {
			return nil, fmt.Errorf("failed to scan collaborator: %w", err)
		}
		collaborators = append(collaborators, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collaborators: %w", err)
	}

	return collaborators, nil
}

// Update updates an existing collaborator.
func (r *collaboratorRepository) Update(ctx context.Context, c *domain.Collaborator) error {
	query := `
		UPDATE colaboradores
		SET numeroidentificacao = $1, nomecompleto = $2, email = $3
		WHERE id = $4
	`

	result, err := r.db.Pool.Exec(ctx, query,
		c.IdentificationNumber,
		c.FullName,
		c.Email,
		c.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCollaboratorExists
		}
		return fmt.Errorf("failed to update collaborator: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCollaboratorNotFound
	}

	return nil
}

// Delete physically deletes a collaborator. Feedback rows referencing it
// keep existing with colaborador_id set to NULL by the schema.
func (r *collaboratorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool.Exec(ctx, `DELETE FROM colaboradores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collaborator: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCollaboratorNotFound
	}

	return nil
}

// Count returns the total number of collaborators.
func (r *collaboratorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM colaboradores`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count collaborators: %w", err)
	}
	return count, nil
}

var _ repository.CollaboratorRepository = (*collaboratorRepository)(nil)
