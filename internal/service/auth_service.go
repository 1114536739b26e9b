package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/auth"
	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/limiter"
	"github.com/pulso-rh/pulso/internal/pkg/password"
	"github.com/pulso-rh/pulso/internal/repository"
)

// AuthService handles user registration and login.
type AuthService struct {
	userRepo   repository.UserRepository
	sectorRepo repository.SectorRepository
	hasher     *password.Hasher
	issuer     *auth.Issuer
	attempts   limiter.AttemptLimiter
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	sectorRepo repository.SectorRepository,
	hasher *password.Hasher,
	issuer *auth.Issuer,
	attempts limiter.AttemptLimiter,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sectorRepo: sectorRepo,
		hasher:     hasher,
		issuer:     issuer,
		attempts:   attempts,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

// =============================================================================
// Input/Output Structs
// =============================================================================

// RegisterInput contains the data needed to register a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	SectorID int64
}

// RegisterOutput contains the created user and its first session token.
type RegisterOutput struct {
	Token string
	User  *domain.User
}

// LoginInput contains the credentials for a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput contains the session token and the authenticated user.
type LoginOutput struct {
	Token string
	User  *domain.User
}

// =============================================================================
// Service Methods
// =============================================================================

// Register creates a new user account tied to an active sector.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if len(input.Name) < 1 || len(input.Name) > 100 {
		return nil, ErrNameRequired
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if input.SectorID <= 0 {
		return nil, ErrSectorRequired
	}

	// The sector must exist and be active to receive new users. A missing
	// or deactivated sector is a bad reference, not a lookup miss.
	if _, err := s.sectorRepo.GetActiveByID(ctx, input.SectorID); err != nil {
		if errors.Is(err, domain.ErrSectorNotFound) {
			return nil, domain.ErrSectorInvalid
		}
		s.logger.Error().Err(err).Int64("sector_id", input.SectorID).Msg("failed to check sector")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	email := domain.NormalizeEmail(input.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check email existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		return nil, domain.ErrEmailInUse
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	user := domain.NewUser(input.Name, email, hash, input.SectorID)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.ErrEmailInUse
		}
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	// The fresh account is logged in right away.
	token, err := s.issuer.Issue(user.ID, user.Email, user.SectorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue registration token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("user_id", user.ID).Int64("sector_id", user.SectorID).Msg("user registered")

	return &RegisterOutput{Token: token, User: user}, nil
}

// Login verifies credentials and issues a session token. A generic
// invalid-credentials error covers unknown emails, wrong passwords and
// deactivated accounts alike, so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := domain.NormalizeEmail(input.Email)

	allowed, err := s.attempts.Allowed(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("attempt limiter check failed")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if !allowed {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("failed to look up user for login")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !user.CanAuthenticate() {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email, user.SectorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.attempts.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset attempt counter")
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return &LoginOutput{Token: token, User: user}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.attempts.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}
