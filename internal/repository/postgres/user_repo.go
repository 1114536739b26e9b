package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// userRepository implements repository.UserRepository.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userWithSectorColumns = `
	u.id, u.nome, u.email, u.senha_hash, u.setor_id, u.ativo, u.created_at, u.updated_at,
	s.id, s.nome, s.descricao, s.ativo, s.created_at, s.updated_at
`

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO usuarios (nome, email, senha_hash, setor_id, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.SectorID,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrEmailInUse, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID with its sector, regardless of active flags.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userWithSectorColumns + `
		FROM usuarios u
		JOIN setores s ON s.id = u.setor_id
		WHERE u.id = $1
	`
	return r.scanUserWithSector(r.db.Pool.QueryRow(ctx, query, id))
}

// GetActiveWithSector retrieves an active user joined to an active sector.
func (r *userRepository) GetActiveWithSector(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userWithSectorColumns + `
		FROM usuarios u
		JOIN setores s ON s.id = u.setor_id
		WHERE u.id = $1 AND u.ativo AND s.ativo
	`
	return r.scanUserWithSector(r.db.Pool.QueryRow(ctx, query, id))
}

// GetActiveByEmail retrieves an active user by lowercased email, joined to
// an active sector.
func (r *userRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userWithSectorColumns + `
		FROM usuarios u
		JOIN setores s ON s.id = u.setor_id
		WHERE u.email = $1 AND u.ativo AND s.ativo
	`
	return r.scanUserWithSector(r.db.Pool.QueryRow(ctx, query, domain.NormalizeEmail(email)))
}

// ExistsByEmail checks if any user has the given email, active or not.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)`,
		domain.NormalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// CountActiveBySector returns the number of active users in a sector.
func (r *userRepository) CountActiveBySector(ctx context.Context, sectorID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE setor_id = $1 AND ativo`,
		sectorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by sector: %w", err)
	}
	return count, nil
}

func (r *userRepository) scanUserWithSector(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	sector := &domain.Sector{}

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.SectorID,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
		&sector.ID,
		&sector.Name,
		&sector.Description,
		&sector.Active,
		&sector.CreatedAt,
		&sector.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Sector = sector
	return user, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
