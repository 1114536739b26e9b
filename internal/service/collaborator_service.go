package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"

	"github.com/pulso-rh/pulso/internal/domain"
	"github.com/pulso-rh/pulso/internal/repository"
)

// CollaboratorService handles collaborator roster operations.
type CollaboratorService struct {
	collabRepo repository.CollaboratorRepository
	logger     zerolog.Logger
}

// NewCollaboratorService creates a new CollaboratorService.
func NewCollaboratorService(
	collabRepo repository.CollaboratorRepository,
	logger zerolog.Logger,
) *CollaboratorService {
	return &CollaboratorService{
		collabRepo: collabRepo,
		logger:     logger.With().Str("service", "collaborator").Logger(),
	}
}

// =============================================================================
// Input/Output Structs
// =============================================================================

// CollaboratorInput contains the data for creating a collaborator.
type CollaboratorInput struct {
	IdentificationNumber string
	FullName             string
	Email                string
}

// UpdateCollaboratorInput contains the fields for a collaborator update.
// Nil fields are left unchanged.
type UpdateCollaboratorInput struct {
	IdentificationNumber *string
	FullName             *string
	Email                *string
}

func (in UpdateCollaboratorInput) validate() error {
	if in.IdentificationNumber != nil && (len(*in.IdentificationNumber) < 1 || len(*in.IdentificationNumber) > 50) {
		return ErrInvalidIdentNumber
	}
	if in.FullName != nil && (len(*in.FullName) < 1 || len(*in.FullName) > 255) {
		return ErrInvalidFullName
	}
	if in.Email != nil {
		if len(*in.Email) < 1 || len(*in.Email) > 100 {
			return ErrInvalidEmail
		}
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	return nil
}

func (in CollaboratorInput) validate() error {
	if len(in.IdentificationNumber) < 1 || len(in.IdentificationNumber) > 50 {
		return ErrInvalidIdentNumber
	}
	if len(in.FullName) < 1 || len(in.FullName) > 255 {
		return ErrInvalidFullName
	}
	if len(in.Email) < 1 || len(in.Email) > 100 {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// =============================================================================
// Service Methods
// =============================================================================

// Create registers a new collaborator.
func (s *CollaboratorService) Create(ctx context.Context, input CollaboratorInput) (*domain.Collaborator, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	c := &domain.Collaborator{
		IdentificationNumber: input.IdentificationNumber,
		FullName:             input.FullName,
		Email:                domain.NormalizeEmail(input.Email),
	}

	if err := s.collabRepo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrCollaboratorExists) {
			return nil, domain.ErrCollaboratorExists
		}
		s.logger.Error().Err(err).Str("ident", input.IdentificationNumber).Msg("failed to create collaborator")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("collaborator_id", c.ID).Msg("collaborator created")

	return c, nil
}

// List returns all collaborators ordered by full name.
func (s *CollaboratorService) List(ctx context.Context) ([]*domain.Collaborator, error) {
	collaborators, err := s.collabRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list collaborators")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return collaborators, nil
}

// Get returns a collaborator by ID.
func (s *CollaboratorService) Get(ctx context.Context, id int64) (*domain.Collaborator, error) {
	c, err := s.collabRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return nil, domain.ErrCollaboratorNotFound
		}
		s.logger.Error().Err(err).Int64("collaborator_id", id).Msg("failed to get collaborator")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return c, nil
}

// Update applies a partial update to a collaborator. Only the supplied
// fields are overwritten.
func (s *CollaboratorService) Update(ctx context.Context, id int64, input UpdateCollaboratorInput) (*domain.Collaborator, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	c, err := s.collabRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return nil, domain.ErrCollaboratorNotFound
		}
		s.logger.Error().Err(err).Int64("collaborator_id", id).Msg("failed to get collaborator for update")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if input.IdentificationNumber != nil {
		c.IdentificationNumber = *input.IdentificationNumber
	}
	if input.FullName != nil {
		c.FullName = *input.FullName
	}
	if input.Email != nil {
		c.Email = domain.NormalizeEmail(*input.Email)
	}

	if err := s.collabRepo.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrCollaboratorExists) {
			return nil, domain.ErrCollaboratorExists
		}
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return nil, domain.ErrCollaboratorNotFound
		}
		s.logger.Error().Err(err).Int64("collaborator_id", id).Msg("failed to update collaborator")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return c, nil
}

// Delete removes a collaborator. Feedback entries that referenced it keep
// their rating history with the link cleared.
func (s *CollaboratorService) Delete(ctx context.Context, id int64) error {
	if err := s.collabRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return domain.ErrCollaboratorNotFound
		}
		s.logger.Error().Err(err).Int64("collaborator_id", id).Msg("failed to delete collaborator")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("collaborator_id", id).Msg("collaborator deleted")

	return nil
}

// Count returns the total number of collaborators.
func (s *CollaboratorService) Count(ctx context.Context) (int64, error) {
	count, err := s.collabRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count collaborators")
		return 0, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return count, nil
}
