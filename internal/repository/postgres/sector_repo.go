package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// sectorRepository implements repository.SectorRepository.
type sectorRepository struct {
	db *DB
}

// NewSectorRepository creates a new PostgreSQL sector repository.
func NewSectorRepository(db *DB) repository.SectorRepository {
	return &sectorRepository{db: db}
}

const sectorColumns = `id, nome, descricao, ativo, created_at, updated_at`

// Create creates a new sector.
func (r *sectorRepository) Create(ctx context.Context, sector *domain.Sector) error {
	query := `
		INSERT INTO setores (nome, descricao, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		sector.Name,
		sector.Description,
		sector.Active,
		sector.CreatedAt,
		sector.UpdatedAt,
	).Scan(&sector.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrSectorNameInUse, sector.Name)
		}
		return fmt.Errorf("failed to create sector: %w", err)
	}

	return nil
}

// GetByID retrieves a sector by ID, active or not.
func (r *sectorRepository) GetByID(ctx context.Context, id int64) (*domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM setores WHERE id = $1`
	return r.scanSector(r.db.Pool.QueryRow(ctx, query, id))
}

// GetActiveByID retrieves a sector by ID only if it is active.
func (r *sectorRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM setores WHERE id = $1 AND ativo`
	return r.scanSector(r.db.Pool.QueryRow(ctx, query, id))
}

// ListActive returns all active sectors ordered by name.
func (r *sectorRepository) ListActive(ctx context.Context) ([]*domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM setores WHERE ativo ORDER BY nome ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	defer rows.Close()

	sectors := make([]*domain.Sector, 0)
	for rows.Next() {
		sector := &domain.Sector{}
		err := rows.Scan(
			&sector.ID,
			&sector.Name,
			&sector.Description,
			&sector.Active,
			&sector.CreatedAt,
			&sector.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sectors: %w", err)
	}

	return sectors, nil
}

// Update updates an existing sector.
func (r *sectorRepository) Update(ctx context.Context, sector *domain.Sector) error {
	query := `
		UPDATE setores
		SET nome = $1, descricao = $2, ativo = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.Pool.Exec(ctx, query,
		sector.Name,
		sector.Description,
		sector.Active,
		sector.UpdatedAt,
		sector.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrSectorNameInUse, sector.Name)
		}
		return fmt.Errorf("failed to update sector: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSectorNotFound
	}

	return nil
}

func (r *sectorRepository) scanSector(row pgx.Row) (*domain.Sector, error) {
	sector := &domain.Sector{}
	err := row.Scan(
		&sector.ID,
		&sector.Name,
		&sector.Description,
		&sector.Active,
		&sector.CreatedAt,
		&sector.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSectorNotFound
		}
		return nil, fmt.Errorf("failed to get sector: %w", err)
	}

	return sector, nil
}

var _ repository.SectorRepository = (*sectorRepository)(nil)
