package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

type EmployeeService struct {
	repo   ports.EmployeeRepository
	logger zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// Create stores a new employee. The email must not match any stored employee exactly.
func (s *EmployeeService) Create(ctx context.Context, input ports.EmployeeFields) (*domain.Employee, error) {
	fields, err := normalizeEmployee(input)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, fields.Email, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Employee{
		Name:       fields.Name,
		Email:      fields.Email,
		Position:   fields.Position,
		Department: fields.Department,
		Salary:     fields.Salary,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmployeeEmailTaken) {
			s.logger.Error().Err(err).Msg("failed to create employee")
		}
		return nil, err
	}

	s.logger.Info().Str("employee_id", created.ID).Msg("employee created")
	return created, nil
}

// List returns every employee, most recently created first.
func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list employees")
		return nil, err
	}
	if employees == nil {
		employees = []*domain.Employee{}
	}
	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// Update replaces the mutable fields of an employee. An email already owned by
// a different employee is rejected.
func (s *EmployeeService) Update(ctx context.Context, id string, input ports.EmployeeFields) (*domain.Employee, error) {
	fields, err := normalizeEmployee(input)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, fields.Email, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if !errors.Is(err, domain.ErrEmployeeNotFound) && !errors.Is(err, domain.ErrEmployeeEmailTaken) {
			s.logger.Error().Err(err).Str("employee_id", id).Msg("failed to update employee")
		}
		return nil, err
	}

	s.logger.Info().Str("employee_id", id).Msg("employee updated")
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrEmployeeNotFound) {
			s.logger.Error().Err(err).Str("employee_id", id).Msg("failed to delete employee")
		}
		return err
	}

	s.logger.Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}

// ensureEmailFree fails with ErrEmployeeEmailTaken when email belongs to an
// employee other than exceptID.
func (s *EmployeeService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != exceptID:
		return domain.ErrEmployeeEmailTaken
	}
	return nil
}
