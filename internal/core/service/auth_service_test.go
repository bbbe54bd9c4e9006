package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

type stubEmployeeRepo struct {
	byID    map[string]*domain.Employee
	nextKey int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byID: make(map[string]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) find(match func(*domain.Employee) bool) (*domain.Employee, error) {
	for _, e := range r.byID {
		if match(e) {
			return cloneEmployee(e), nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	return r.find(func(e *domain.Employee) bool { return e.Email == email })
}

func (r *stubEmployeeRepo) FindByEmpID(_ context.Context, empID string) (*domain.Employee, error) {
	return r.find(func(e *domain.Employee) bool { return e.EmpID == empID })
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) List(_ context.Context, team string) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range r.byID {
		if team == "" || e.Team == team {
			out = append(out, cloneEmployee(e))
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	for _, existing := range r.byID {
		if existing.EmpID == e.EmpID || existing.Email == e.Email {
			return nil, domain.ErrEmployeeExists
		}
	}
	r.nextKey++
	stored := cloneEmployee(e)
	stored.ID = fmt.Sprintf("emp-%d", r.nextKey)
	r.byID[stored.ID] = stored
	return cloneEmployee(stored), nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, id string, upd ports.EmployeeUpdate) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	if upd.EmpID != nil {
		e.EmpID = *upd.EmpID
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Role != nil {
		e.Role = *upd.Role
	}
	if upd.Team != nil {
		e.Team = *upd.Team
	}
	if upd.Email != nil {
		e.Email = *upd.Email
	}
	if upd.IsAdmin != nil {
		e.IsAdmin = *upd.IsAdmin
	}
	if upd.PasswordHash != nil {
		e.PasswordHash = *upd.PasswordHash
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.byID, id)
	return nil
}

func seedEmployee(t *testing.T, repo *stubEmployeeRepo, empID, email, password string) *domain.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	e, err := repo.Create(context.Background(), &domain.Employee{
		EmpID:        empID,
		Name:         "Priya Sharma",
		Role:         "SEO Specialist",
		Team:         "seo",
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "E002", "priya@example.com", "admin123")
	svc := NewAuthService(repo, "secret", time.Hour)

	token, emp, err := svc.Login(context.Background(), "priya@example.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if emp == nil || emp.EmpID != "E002" {
		t.Fatalf("unexpected employee: %+v", emp)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "E002" {
		t.Fatalf("expected subject E002, got %v", claims["sub"])
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim: %v", err)
	}
	if d := time.Until(exp.Time); d <= 59*time.Minute || d > time.Hour {
		t.Fatalf("unexpected token lifetime %v", d)
	}
}

func TestAuthService_Login_DefaultTTL(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "E002", "priya@example.com", "admin123")
	svc := NewAuthService(repo, "secret", 0)

	token, _, err := svc.Login(context.Background(), "priya@example.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	exp, _ := claims.GetExpirationTime()
	if d := time.Until(exp.Time); d > 30*time.Minute || d < 29*time.Minute {
		t.Fatalf("expected 30 minute lifetime, got %v", d)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "E001", "rahul@example.com", "goodpass")
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "rahul@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubEmployeeRepo(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := NewAuthService(newStubEmployeeRepo(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "E002", "priya@example.com", "admin123")
	svc := NewAuthService(repo, "secret", time.Hour)

	emp, err := svc.Authenticate(context.Background(), "E002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.Email != "priya@example.com" {
		t.Fatalf("unexpected employee: %+v", emp)
	}

	if _, err := svc.Authenticate(context.Background(), "E404"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown subject, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty subject, got %v", err)
	}
}
