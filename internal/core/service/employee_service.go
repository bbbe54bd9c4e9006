package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

type EmployeeService struct {
	repo ports.EmployeeRepository
	log  zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, log: log}
}

func (s *EmployeeService) List(ctx context.Context, team string) ([]*domain.Employee, error) {
	return s.repo.List(ctx, team)
}

func (s *EmployeeService) Get(ctx context.Context, empID string) (*domain.Employee, error) {
	return s.repo.FindByEmpID(ctx, empID)
}

// Create stores a new employee with a bcrypt hash of the given password.
func (s *EmployeeService) Create(ctx context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Employee{
		EmpID:        in.EmpID,
		Name:         in.Name,
		Role:         in.Role,
		Team:         in.Team,
		Email:        in.Email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("emp_id", created.EmpID).Bool("is_admin", created.IsAdmin).Msg("employee created")
	return created, nil
}

// Update applies a partial edit, re-hashing the password when one is given.
func (s *EmployeeService) Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	upd := ports.EmployeeUpdate{
		EmpID:   patch.EmpID,
		Name:    patch.Name,
		Role:    patch.Role,
		Team:    patch.Team,
		Email:   patch.Email,
		IsAdmin: patch.IsAdmin,
	}
	if patch.Password != nil {
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("update employee: %w", err)
		}
		upd.PasswordHash = &hash
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("employee deleted")
	return nil
}

// HashPassword returns the bcrypt hash stored for a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
