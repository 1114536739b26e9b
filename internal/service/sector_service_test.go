package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/domain"
)

func TestSectorService_Create(t *testing.T) {
	longDesc := strings.Repeat("x", 501)

	tests := []struct {
		name    string
		input   CreateSectorInput
		setup   func(*MockSectorRepository)
		wantErr error
	}{
		{
			name:  "success",
			input: CreateSectorInput{Name: "Recursos Humanos"},
		},
		{
			name:    "empty name",
			input:   CreateSectorInput{Name: ""},
			wantErr: ErrNameRequired,
		},
		{
			name:    "name too long",
			input:   CreateSectorInput{Name: strings.Repeat("a", 101)},
			wantErr: ErrNameRequired,
		},
		{
			name:    "description too long",
			input:   CreateSectorInput{Name: "TI", Description: &longDesc},
			wantErr: ErrDescriptionTooLong,
		},
		{
			name:  "duplicate name",
			input: CreateSectorInput{Name: "RH"},
			setup: func(m *MockSectorRepository) {
				addSector(m, "RH", true)
			},
			wantErr: domain.ErrSectorNameInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sectors := NewMockSectorRepository()
			if tt.setup != nil {
				tt.setup(sectors)
			}

			svc := NewSectorService(sectors, NewMockUserRepository(), zerolog.Nop())

			sector, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sector.ID == 0 {
				t.Error("expected assigned sector ID")
			}
			if !sector.Active {
				t.Error("expected new sector to be active")
			}
		})
	}
}

func TestSectorService_ListOnlyActive(t *testing.T) {
	sectors := NewMockSectorRepository()
	addSector(sectors, "Vendas", true)
	addSector(sectors, "Antigo", false)
	addSector(sectors, "Engenharia", true)

	svc := NewSectorService(sectors, NewMockUserRepository(), zerolog.Nop())

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 active sectors, got %d", len(list))
	}
	if list[0].Name != "Engenharia" || list[1].Name != "Vendas" {
		t.Errorf("expected name order [Engenharia Vendas], got [%s %s]", list[0].Name, list[1].Name)
	}
}

func TestSectorService_GetReturnsInactive(t *testing.T) {
	sectors := NewMockSectorRepository()
	sector := addSector(sectors, "Antigo", false)

	svc := NewSectorService(sectors, NewMockUserRepository(), zerolog.Nop())

	got, err := svc.Get(context.Background(), sector.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Active {
		t.Error("expected sector to still be inactive")
	}
	if got.Name != "Antigo" {
		t.Errorf("unexpected sector: %+v", got)
	}

	if _, err := svc.Get(context.Background(), 999); !errors.Is(err, domain.ErrSectorNotFound) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}
}

func TestSectorService_Update(t *testing.T) {
	sectors := NewMockSectorRepository()
	sector := addSector(sectors, "RH", true)

	svc := NewSectorService(sectors, NewMockUserRepository(), zerolog.Nop())

	newName := "Pessoas e Cultura"
	updated, err := svc.Update(context.Background(), UpdateSectorInput{ID: sector.ID, Name: &newName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("expected renamed sector, got %s", updated.Name)
	}
}

func TestSectorService_Reactivate(t *testing.T) {
	sectors := NewMockSectorRepository()
	sector := addSector(sectors, "Antigo", false)

	svc := NewSectorService(sectors, NewMockUserRepository(), zerolog.Nop())

	active := true
	updated, err := svc.Update(context.Background(), UpdateSectorInput{ID: sector.ID, Active: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Active {
		t.Error("expected sector to be active again")
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected reactivated sector in listing, got %d entries", len(list))
	}
}

func TestSectorService_Deactivate(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*MockSectorRepository, *MockUserRepository) int64
		wantErr error
	}{
		{
			name: "success when empty",
			setup: func(sectors *MockSectorRepository, _ *MockUserRepository) int64 {
				return addSector(sectors, "RH", true).ID
			},
		},
		{
			name: "refused with active users",
			setup: func(sectors *MockSectorRepository, users *MockUserRepository) int64 {
				sector := addSector(sectors, "RH", true)
				u := domain.NewUser("Maria", "maria@empresa.com", "hash", sector.ID)
				_ = users.Create(context.Background(), u)
				return sector.ID
			},
			wantErr: domain.ErrSectorInUse,
		},
		{
			name: "allowed with only inactive users",
			setup: func(sectors *MockSectorRepository, users *MockUserRepository) int64 {
				sector := addSector(sectors, "RH", true)
				u := domain.NewUser("Maria", "maria@empresa.com", "hash", sector.ID)
				u.Active = false
				_ = users.Create(context.Background(), u)
				return sector.ID
			},
		},
		{
			name: "unknown sector",
			setup: func(_ *MockSectorRepository, _ *MockUserRepository) int64 {
				return 42
			},
			wantErr: domain.ErrSectorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sectors := NewMockSectorRepository()
			users := NewMockUserRepository()
			id := tt.setup(sectors, users)

			svc := NewSectorService(sectors, users, zerolog.Nop())

			err := svc.Deactivate(context.Background(), id)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sectors.sectors[id].Active {
				t.Error("expected sector to be deactivated")
			}
		})
	}
}
