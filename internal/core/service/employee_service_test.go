package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

func TestEmployeeService_Create_HashesPassword(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, discardLogger)

	emp, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		EmpID:    "E010",
		Name:     "Nina",
		Role:     "Copywriter",
		Team:     "content",
		Email:    "nina@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if emp.ID == "" {
		t.Fatal("expected store key")
	}
	if emp.PasswordHash == "pass123" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestEmployeeService_Create_Duplicate(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, discardLogger)
	in := ports.CreateEmployeeInput{EmpID: "E010", Email: "nina@example.com", Password: "x"}

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	in.Email = "other@example.com"
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrEmployeeExists) {
		t.Fatalf("expected ErrEmployeeExists, got %v", err)
	}
}

func TestEmployeeService_Update_RehashesPassword(t *testing.T) {
	repo := newStubEmployeeRepo()
	emp := seedEmployee(t, repo, "E002", "priya@example.com", "old")
	svc := NewEmployeeService(repo, discardLogger)

	role := "Lead"
	pw := "new-secret"
	updated, err := svc.Update(context.Background(), emp.ID, domain.EmployeePatch{Role: &role, Password: &pw})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != "Lead" || updated.Email != "priya@example.com" {
		t.Fatalf("unexpected employee: %+v", updated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-secret")); err != nil {
		t.Fatalf("password not re-hashed: %v", err)
	}
}

func TestEmployeeService_Update_NotFound(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), discardLogger)

	name := "x"
	if _, err := svc.Update(context.Background(), "missing", domain.EmployeePatch{Name: &name}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeService_ListAndGet(t *testing.T) {
	repo := newStubEmployeeRepo()
	seedEmployee(t, repo, "E001", "a@example.com", "x")
	other := seedEmployee(t, repo, "E002", "b@example.com", "x")
	repo.byID[other.ID].Team = "branding"
	svc := NewEmployeeService(repo, discardLogger)

	all, err := svc.List(context.Background(), "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 employees, got %d (%v)", len(all), err)
	}
	branding, _ := svc.List(context.Background(), "branding")
	if len(branding) != 1 || branding[0].EmpID != "E002" {
		t.Fatalf("unexpected team filter result: %+v", branding)
	}

	got, err := svc.Get(context.Background(), "E001")
	if err != nil || got.Email != "a@example.com" {
		t.Fatalf("unexpected get result: %+v (%v)", got, err)
	}
}

func TestEmployeeService_Delete(t *testing.T) {
	repo := newStubEmployeeRepo()
	emp := seedEmployee(t, repo, "E001", "a@example.com", "x")
	svc := NewEmployeeService(repo, discardLogger)

	if err := svc.Delete(context.Background(), emp.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), emp.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
