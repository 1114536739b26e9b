package sqlite

import (
	"context"
	"fmt"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// collaboratorRepository implements repository.CollaboratorRepository for SQLite.
type collaboratorRepository struct {
	db *DB
}

// NewCollaboratorRepository creates a new SQLite collaborator repository.
func NewCollaboratorRepository(db *DB) repository.CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

// Create creates a new collaborator.
func (r *collaboratorRepository) Create(ctx context.Context, c *domain.Collaborator) error {
	query := `
		INSERT INTO colaboradores (numeroidentificacao, nomecompleto, email)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		c.IdentificationNumber,
		c.FullName,
		c.Email,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCollaboratorExists
		}
		return fmt.Errorf("failed to create collaborator: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	c.ID = id

	return nil
}

// GetByID retrieves a collaborator by ID.
func (r *collaboratorRepository) GetByID(ctx context.Context, id int64) (*domain.Collaborator, error) {
	query := `SELECT id, numeroidentificacao, nomecompleto, email FROM colaboradores WHERE id = ?`

	c := &domain.Collaborator{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.IdentificationNumber,
		&c.FullName,
		&c.Email,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("failed to get collaborator: %w", err)
	}

	return c, nil
}

// List returns all collaborators ordered by full name.
func (r *collaboratorRepository) List(ctx context.Context) ([]*domain.Collaborator, error) {
	query := `SELECT id, numeroidentificacao, nomecompleto, email FROM colaboradores ORDER BY nomecompleto ASC`

	rows, err := r.db.QueryContext(ctx, query)
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
		SET numeroidentificacao = ?, nomecompleto = ?, email = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
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

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrCollaboratorNotFound
	}

	return nil
}

// Delete physically deletes a collaborator. Feedback rows referencing it
// keep existing with colaborador_id set to NULL by the schema.
func (r *collaboratorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM colaboradores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collaborator: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrCollaboratorNotFound
	}

	return nil
}

// Count returns the total number of collaborators.
func (r *collaboratorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM colaboradores`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count collaborators: %w", err)
	}
	return count, nil
}

var _ repository.CollaboratorRepository = (*collaboratorRepository)(nil)
