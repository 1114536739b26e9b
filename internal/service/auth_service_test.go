package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/auth"
	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/limiter"
	"github.com/pulso-rh/pulso/internal/pkg/password"
)

func newTestAuthService(userRepo *MockUserRepository, sectorRepo *MockSectorRepository, attempts limiter.AttemptLimiter) *AuthService {
	if attempts == nil {
		attempts = limiter.NewNoop()
	}
	hasher := password.NewHasher(10)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return NewAuthService(userRepo, sectorRepo, hasher, issuer, attempts, zerolog.Nop())
}

func addSector(repo *MockSectorRepository, name string, active bool) *domain.Sector {
	sector := domain.NewSector(name, nil)
	sector.Active = active
	_ = repo.Create(context.Background(), sector)
	if !active {
		repo.sectors[sector.ID].Active = false
	}
	return sector
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		setup   func(*MockUserRepository, *MockSectorRepository)
		wantErr error
	}{
		{
			name: "success",
			input: RegisterInput{
				Name:     "Maria Silva",
				Email:    "Maria@Empresa.com",
				Password: "secret123",
				SectorID: 1,
			},
			setup: func(_ *MockUserRepository, sectors *MockSectorRepository) {
				addSector(sectors, "RH", true)
			},
		},
		{
			name: "missing name",
			input: RegisterInput{
				Email:    "a@b.com",
				Password: "secret123",
				SectorID: 1,
			},
			wantErr: ErrNameRequired,
		},
		{
			name: "invalid email",
			input: RegisterInput{
				Name:     "Maria",
				Email:    "not-an-email",
				Password: "secret123",
				SectorID: 1,
			},
			wantErr: ErrInvalidEmail,
		},
		{
			name: "short password",
			input: RegisterInput{
				Name:     "Maria",
				Email:    "a@b.com",
				Password: "12345",
				SectorID: 1,
			},
			wantErr: ErrPasswordTooShort,
		},
		{
			name: "missing sector",
			input: RegisterInput{
				Name:     "Maria",
				Email:    "a@b.com",
				Password: "secret123",
			},
			wantErr: ErrSectorRequired,
		},
		{
			name: "unknown sector",
			input: RegisterInput{
				Name:     "Maria",
				Email:    "a@b.com",
				Password: "secret123",
				SectorID: 99,
			},
			wantErr: domain.ErrSectorInvalid,
		},
		{
			name: "inactive sector",
			input: RegisterInput{
				Name:     "Maria",
				Email:    "a@b.com",
				Password: "secret123",
				SectorID: 1,
			},
			setup: func(_ *MockUserRepository, sectors *MockSectorRepository) {
				addSector(sectors, "Desativado", false)
			},
			wantErr: domain.ErrSectorInvalid,
		},
		{
			name: "duplicate email",
			input: RegisterInput{
				Name:     "Maria",
				Email:    "maria@empresa.com",
				Password: "secret123",
				SectorID: 1,
			},
			setup: func(users *MockUserRepository, sectors *MockSectorRepository) {
				sector := addSector(sectors, "RH", true)
				u := domain.NewUser("Existing", "maria@empresa.com", "hash", sector.ID)
				_ = users.Create(context.Background(), u)
			},
			wantErr: domain.ErrEmailInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := NewMockUserRepository()
			sectors := NewMockSectorRepository()
			if tt.setup != nil {
				tt.setup(users, sectors)
			}

			svc := newTestAuthService(users, sectors, nil)

			out, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.User.ID == 0 {
				t.Error("expected assigned user ID")
			}
			if out.User.Email != "maria@empresa.com" {
				t.Errorf("expected normalized email, got %s", out.User.Email)
			}
			if !out.User.Active {
				t.Error("expected new user to be active")
			}
			if out.User.PasswordHash == tt.input.Password {
				t.Error("password stored in plaintext")
			}
			if out.Token == "" {
				t.Error("expected a session token for the fresh account")
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	setupUser := func(users *MockUserRepository, sectors *MockSectorRepository, userActive, sectorActive bool) {
		sector := addSector(sectors, "RH", sectorActive)
		hasher := password.NewHasher(10)
		hash, _ := hasher.Hash("secret123")
		u := domain.NewUser("Maria", "maria@empresa.com", hash, sector.ID)
		u.Active = userActive
		u.Sector = sector
		_ = users.Create(context.Background(), u)
	}

	tests := []struct {
		name    string
		input   LoginInput
		setup   func(*MockUserRepository, *MockSectorRepository)
		wantErr error
	}{
		{
			name:  "success",
			input: LoginInput{Email: "Maria@Empresa.com", Password: "secret123"},
			setup: func(u *MockUserRepository, s *MockSectorRepository) {
				setupUser(u, s, true, true)
			},
		},
		{
			name:    "unknown email",
			input:   LoginInput{Email: "nobody@empresa.com", Password: "secret123"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:  "wrong password",
			input: LoginInput{Email: "maria@empresa.com", Password: "wrong-pass"},
			setup: func(u *MockUserRepository, s *MockSectorRepository) {
				setupUser(u, s, true, true)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:  "inactive user",
			input: LoginInput{Email: "maria@empresa.com", Password: "secret123"},
			setup: func(u *MockUserRepository, s *MockSectorRepository) {
				setupUser(u, s, false, true)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:  "inactive sector",
			input: LoginInput{Email: "maria@empresa.com", Password: "secret123"},
			setup: func(u *MockUserRepository, s *MockSectorRepository) {
				setupUser(u, s, true, false)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := NewMockUserRepository()
			sectors := NewMockSectorRepository()
			if tt.setup != nil {
				tt.setup(users, sectors)
			}

			svc := newTestAuthService(users, sectors, nil)

			out, err := svc.Login(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Token == "" {
				t.Error("expected a session token")
			}
			if out.User.Email != "maria@empresa.com" {
				t.Errorf("unexpected user: %s", out.User.Email)
			}
		})
	}
}

func TestAuthService_LoginThrottled(t *testing.T) {
	users := NewMockUserRepository()
	sectors := NewMockSectorRepository()

	attempts := limiter.NewMemory(3, time.Minute)
	svc := newTestAuthService(users, sectors, attempts)

	input := LoginInput{Email: "maria@empresa.com", Password: "wrong"}

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), input); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i+1, err)
		}
	}

	if _, err := svc.Login(context.Background(), input); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected throttling after repeated failures, got %v", err)
	}
}

func TestAuthService_LoginIssuesVerifiableToken(t *testing.T) {
	users := NewMockUserRepository()
	sectors := NewMockSectorRepository()
	sector := addSector(sectors, "RH", true)

	hasher := password.NewHasher(10)
	hash, _ := hasher.Hash("secret123")
	u := domain.NewUser("Maria", "maria@empresa.com", hash, sector.ID)
	u.Sector = sector
	_ = users.Create(context.Background(), u)

	issuer := auth.NewIssuer("test-secret", time.Hour)
	svc := NewAuthService(users, sectors, hasher, issuer, limiter.NewNoop(), zerolog.Nop())

	out, err := svc.Login(context.Background(), LoginInput{Email: "maria@empresa.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := issuer.Verify(out.Token)
	if err != nil {
		t.Fatalf("token verification failed: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("expected user id %d in claims, got %d", u.ID, claims.UserID)
	}
	if claims.SectorID != sector.ID {
		t.Errorf("expected sector id %d in claims, got %d", sector.ID, claims.SectorID)
	}
	if claims.Email != "maria@empresa.com" {
		t.Errorf("unexpected email in claims: %s", claims.Email)
	}
}
