package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

// AuthService implements login and token subject resolution.
type AuthService struct {
	repo      ports.EmployeeRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.EmployeeRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login checks the password and returns a bearer token whose subject is the
// employee's empID. Unknown emails and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Employee, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	emp, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(emp)
	if err != nil {
		return "", nil, err
	}
	return token, emp, nil
}

// Authenticate resolves the employee behind a token subject.
func (s *AuthService) Authenticate(ctx context.Context, empID string) (*domain.Employee, error) {
	if empID == "" {
		return nil, domain.ErrUnauthenticated
	}
	emp, err := s.repo.FindByEmpID(ctx, empID)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *AuthService) generateToken(emp *domain.Employee) (string, error) {
	claims := jwt.MapClaims{
		"sub": emp.EmpID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
