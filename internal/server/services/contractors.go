// Package services contains the server-side business logic: contractor
// registration, the clock-in/clock-out engine, and attendance report
// generation.
package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/logging"
	"github.com/mpavlovs/punchclock/internal/server/models"
	"github.com/mpavlovs/punchclock/internal/server/repositories/repomanager"
)

// RegisterParams carries the fields accepted at contractor registration.
// Everything past name and email is optional pass-through profile data.
type RegisterParams struct {
	Name     string
	Email    string
	Phone    string
	TeamID   string
	TeamName string
	TimeZone string
	AppAndOS string
}

// ContractorService manages the contractor directory.
type ContractorService struct {
	repos    repomanager.RepositoryManager
	validate *validator.Validate
	logger   logging.Logger
}

func NewContractorService(m repomanager.RepositoryManager, logger logging.Logger) *ContractorService {
	return &ContractorService{
		repos:    m,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates an active contractor. The email must be syntactically
// valid; a duplicate email also fails with ErrInvalidInput.
func (s *ContractorService) Register(ctx context.Context, params RegisterParams) (*models.Contractor, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	}
	if err := s.validate.Var(params.Email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", common.ErrInvalidInput, params.Email)
	}

	contractor := &models.Contractor{
		Name:     params.Name,
		Email:    params.Email,
		Active:   true,
		Phone:    params.Phone,
		TeamID:   params.TeamID,
		TeamName: params.TeamName,
		TimeZone: params.TimeZone,
		AppAndOS: params.AppAndOS,
	}

	created, err := s.repos.Contractors().Create(ctx, contractor)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "contractor registered", "contractor_id", created.ID, "email", created.Email)
	return created, nil
}

func (s *ContractorService) List(ctx context.Context) ([]*models.Contractor, error) {
	return s.repos.Contractors().List(ctx)
}

func (s *ContractorService) Get(ctx context.Context, id string) (*models.Contractor, error) {
	return s.repos.Contractors().GetByID(ctx, id)
}

// SetActive toggles soft-deactivation and returns the updated contractor.
// Deactivation does not touch open sessions; a deactivated contractor can
// still clock out of one.
func (s *ContractorService) SetActive(ctx context.Context, id string, active bool) (*models.Contractor, error) {
	if err := s.repos.Contractors().SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "contractor active flag updated", "contractor_id", id, "active", active)
	return s.repos.Contractors().GetByID(ctx, id)
}
