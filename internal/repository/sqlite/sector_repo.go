package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// sectorRepository implements repository.SectorRepository for SQLite.
type sectorRepository struct {
	db *DB
}

// NewSectorRepository creates a new SQLite sector repository.
func NewSectorRepository(db *DB) repository.SectorRepository {
	return &sectorRepository{db: db}
}

const sectorColumns = `id, nome, descricao, ativo, created_at, updated_at`

// Create creates a new sector.
func (r *sectorRepository) Create(ctx context.Context, sector *domain.Sector) error {
	query := `
		INSERT INTO setores (nome, descricao, ativo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		sector.Name,
		sector.Description,
		boolToInt(sector.Active),
		formatTime(sector.CreatedAt),
		formatTime(sector.UpdatedAt),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrSectorNameInUse, sector.Name)
		}
		return fmt.Errorf("failed to create sector: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	sector.ID = id

	return nil
}

// GetByID retrieves a sector by ID, active or not.
func (r *sectorRepository) GetByID(ctx context.Context, id int64) (*domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM setores WHERE id = ?`
	return r.scanSector(r.db.QueryRowContext(ctx, query, id))
}

// GetActiveByID retrieves a sector by ID only if it is active.
func (r *sectorRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM setores WHERE id = ? AND ativo = 1`
	return r.scanSector(r.db.QueryRowContext(ctx, query, id))
}

// ListActive returns all active sectors ordered by name.
func (r *sectorRepository) ListActive(ctx context.Context) ([]*domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM setores WHERE ativo = 1 ORDER BY nome ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	defer rows.Close()

	sectors := make([]*domain.Sector, 0)
	for rows.Next() {
		sector, err := scanSectorRow(rows)
		if err != nil {
			return nil, err
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
		SET nome = ?, descricao = ?, ativo = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		sector.Name,
		sector.Description,
		boolToInt(sector.Active),
		formatTime(sector.UpdatedAt),
		sector.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrSectorNameInUse, sector.Name)
		}
		return fmt.Errorf("failed to update sector: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrSectorNotFound
	}

	return nil
}

func (r *sectorRepository) scanSector(row *sql.Row) (*domain.Sector, error) {
	sector := &domain.Sector{}
	var active int
	var created, updated string
	var description sql.NullString

	err := row.Scan(
		&sector.ID,
		&sector.Name,
		&description,
		&active,
		&created,
		&updated,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrSectorNotFound
		}
		return nil, fmt.Errorf("failed to get sector: %w", err)
	}

	sector.Description = scanNullString(description)
	sector.Active = active != 0
	sector.CreatedAt = parseTime(created)
	sector.UpdatedAt = parseTime(updated)

	return sector, nil
}

func scanSectorRow(rows *sql.Rows) (*domain.Sector, error) {
	sector := &domain.Sector{}
	var active int
	var created, updated string
	var description sql.NullString

	err := rows.Scan(
		&sector.ID,
		&sector.Name,
		&description,
		&active,
		&created,
		&updated,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sector: %w", err)
	}

	sector.Description = scanNullString(description)
	sector.Active = active != 0
	sector.CreatedAt = parseTime(created)
	sector.UpdatedAt = parseTime(updated)

	return sector, nil
}

// Ensure sectorRepository implements repository.SectorRepository.
var _ repository.SectorRepository = (*sectorRepository)(nil)
