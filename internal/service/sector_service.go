package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// SectorService handles sector operations.
type SectorService struct {
	sectorRepo repository.SectorRepository
	userRepo   repository.UserRepository
	logger     zerolog.Logger
}

// NewSectorService creates a new SectorService.
func NewSectorService(
	sectorRepo repository.SectorRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) *SectorService {
	return &SectorService{
		sectorRepo: sectorRepo,
		userRepo:   userRepo,
		logger:     logger.With().Str("service", "sector").Logger(),
	}
}

// =============================================================================
// Input/Output Structs
// =============================================================================

// CreateSectorInput contains the data needed to create a sector.
type CreateSectorInput struct {
	Name        string
	Description *string
}

// UpdateSectorInput contains the data for a sector update. Nil fields are
// left unchanged.
type UpdateSectorInput struct {
	ID          int64
	Name        *string
	Description *string
	Active      *bool
}

// =============================================================================
// Service Methods
// =============================================================================

// Create creates a new sector.
func (s *SectorService) Create(ctx context.Context, input CreateSectorInput) (*domain.Sector, error) {
	if len(input.Name) < 1 || len(input.Name) > 100 {
		return nil, ErrNameRequired
	}
	if input.Description != nil && len(*input.Description) > 500 {
		return nil, ErrDescriptionTooLong
	}

	sector := domain.NewSector(input.Name, input.Description)

	if err := s.sectorRepo.Create(ctx, sector); err != nil {
		if errors.Is(err, domain.ErrSectorNameInUse) {
			return nil, domain.ErrSectorNameInUse
		}
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create sector")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("sector_id", sector.ID).Str("name", sector.Name).Msg("sector created")

	return sector, nil
}

// List returns all active sectors ordered by name.
func (s *SectorService) List(ctx context.Context) ([]*domain.Sector, error) {
	sectors, err := s.sectorRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list sectors")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return sectors, nil
}

// Get returns a sector by ID, active or not, so deactivated sectors stay
// inspectable.
func (s *SectorService) Get(ctx context.Context, id int64) (*domain.Sector, error) {
	sector, err := s.sectorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSectorNotFound) {
			return nil, domain.ErrSectorNotFound
		}
		s.logger.Error().Err(err).Int64("sector_id", id).Msg("failed to get sector")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return sector, nil
}

// Update applies a partial update to a sector. Deactivated sectors can be
// updated too, which is how a sector is reactivated (ativo=true).
func (s *SectorService) Update(ctx context.Context, input UpdateSectorInput) (*domain.Sector, error) {
	if input.Name != nil && (len(*input.Name) < 1 || len(*input.Name) > 100) {
		return nil, ErrNameRequired
	}
	if input.Description != nil && len(*input.Description) > 500 {
		return nil, ErrDescriptionTooLong
	}

	sector, err := s.sectorRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSectorNotFound) {
			return nil, domain.ErrSectorNotFound
		}
		s.logger.Error().Err(err).Int64("sector_id", input.ID).Msg("failed to get sector for update")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if input.Name != nil {
		sector.Name = *input.Name
	}
	if input.Description != nil {
		sector.Description = input.Description
	}
	if input.Active != nil {
		sector.Active = *input.Active
	}
	sector.UpdatedAt = time.Now().UTC()

	if err := s.sectorRepo.Update(ctx, sector); err != nil {
		if errors.Is(err, domain.ErrSectorNameInUse) {
			return nil, domain.ErrSectorNameInUse
		}
		if errors.Is(err, domain.ErrSectorNotFound) {
			return nil, domain.ErrSectorNotFound
		}
		s.logger.Error().Err(err).Int64("sector_id", input.ID).Msg("failed to update sector")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return sector, nil
}

// Deactivate soft-deletes a sector. The sector is refused while active
// users still belong to it; feedback history is left untouched.
func (s *SectorService) Deactivate(ctx context.Context, id int64) error {
	sector, err := s.sectorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSectorNotFound) {
			return domain.ErrSectorNotFound
		}
		s.logger.Error().Err(err).Int64("sector_id", id).Msg("failed to get sector for deactivation")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	count, err := s.userRepo.CountActiveBySector(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("sector_id", id).Msg("failed to count sector users")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if count > 0 {
		return domain.ErrSectorInUse
	}

	sector.Active = false
	sector.UpdatedAt = time.Now().UTC()

	if err := s.sectorRepo.Update(ctx, sector); err != nil {
		s.logger.Error().Err(err).Int64("sector_id", id).Msg("failed to deactivate sector")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("sector_id", id).Msg("sector deactivated")

	return nil
}
