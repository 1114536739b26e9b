package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// userRepository implements repository.UserRepository for SQLite.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

// userWithSectorColumns is the select list shared by every user lookup.
// Users are always loaded with their sector joined in.
const userWithSectorColumns = `
	u.id, u.nome, u.email, u.senha_hash, u.setor_id, u.ativo, u.created_at, u.updated_at,
	s.id, s.nome, s.descricao, s.ativo, s.created_at, s.updated_at
`

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO usuarios (nome, email, senha_hash, setor_id, ativo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.SectorID,
		boolToInt(user.Active),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrEmailInUse, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID with its sector, regardless of active flags.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userWithSectorColumns + `
		FROM usuarios u
		JOIN setores s ON s.id = u.setor_id
		WHERE u.id = ?
	`
	return r.scanUserWithSector(r.db.QueryRowContext(ctx, query, id))
}

// GetActiveWithSector retrieves an active user joined to an active sector.
func (r *userRepository) GetActiveWithSector(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userWithSectorColumns + `
		FROM usuarios u
		JOIN setores s ON s.id = u.setor_id
		WHERE u.id = ? AND u.ativo = 1 AND s.ativo = 1
	`
	return r.scanUserWithSector(r.db.QueryRowContext(ctx, query, id))
}

// GetActiveByEmail retrieves an active user by lowercased email, joined to
// an active sector.
func (r *userRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userWithSectorColumns + `
		FROM usuarios u
		JOIN setores s ON s.id = u.setor_id
		WHERE u.email = ? AND u.ativo = 1 AND s.ativo = 1
	`
	return r.scanUserWithSector(r.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// ExistsByEmail checks if any user has the given email, active or not.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE email = ?`,
		domain.NormalizeEmail(email),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// CountActiveBySector returns the number of active users in a sector.
func (r *userRepository) CountActiveBySector(ctx context.Context, sectorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE setor_id = ? AND ativo = 1`,
		sectorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by sector: %w", err)
	}
	return count, nil
}

// scanUserWithSector scans a user row joined with its sector.
func (r *userRepository) scanUserWithSector(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	sector := &domain.Sector{}
	var userActive, sectorActive int
	var userCreated, userUpdated, sectorCreated, sectorUpdated string
	var description sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.SectorID,
		&userActive,
		&userCreated,
		&userUpdated,
		&sector.ID,
		&sector.Name,
		&description,
		&sectorActive,
		&sectorCreated,
		&sectorUpdated,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Active = userActive != 0
	user.CreatedAt = parseTime(userCreated)
	user.UpdatedAt = parseTime(userUpdated)

	sector.Description = scanNullString(description)
	sector.Active = sectorActive != 0
	sector.CreatedAt = parseTime(sectorCreated)
	sector.UpdatedAt = parseTime(sectorUpdated)
	user.Sector = sector

	return user, nil
}

// boolToInt converts a boolean to an integer (SQLite doesn't have native boolean).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// scanNullString handles nullable string columns.
func scanNullString(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

// formatTime stores timestamps as RFC3339 UTC strings so that string
// comparison matches time ordering.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime reads an RFC3339 timestamp stored by formatTime.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// Ensure userRepository implements repository.UserRepository.
var _ repository.UserRepository = (*userRepository)(nil)
