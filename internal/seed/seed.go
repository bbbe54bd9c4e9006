// Package seed creates the initial staff accounts.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

//go:embed employees.yaml
var defaultEmployees []byte

type Employee struct {
	EmpID    string `yaml:"empID"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Team     string `yaml:"team"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	IsAdmin  bool   `yaml:"isAdmin"`
}

type file struct {
	Employees []Employee `yaml:"employees"`
}

// Default returns the built-in accounts.
func Default() ([]Employee, error) {
	return Parse(defaultEmployees)
}

// Parse decodes a seed document and rejects entries missing an empID,
// email or password.
func Parse(data []byte) ([]Employee, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	for i, e := range f.Employees {
		if e.EmpID == "" || e.Email == "" || e.Password == "" {
			return nil, fmt.Errorf("seed: entry %d: empID, email and password are required", i)
		}
	}
	return f.Employees, nil
}

// Result counts what Run did.
type Result struct {
	Created int
	Skipped int
}

// Run creates every employee whose empID is not stored yet.
func Run(ctx context.Context, svc ports.EmployeeService, employees []Employee, log zerolog.Logger) (Result, error) {
	var res Result
	for _, e := range employees {
		_, err := svc.Get(ctx, e.EmpID)
		switch {
		case err == nil:
			res.Skipped++
			log.Info().Str("emp_id", e.EmpID).Msg("employee exists, skipping")
			continue
		case !errors.Is(err, domain.ErrEmployeeNotFound):
			return res, fmt.Errorf("seed %s: %w", e.EmpID, err)
		}

		_, err = svc.Create(ctx, ports.CreateEmployeeInput{
			EmpID:    e.EmpID,
			Name:     e.Name,
			Role:     e.Role,
			Team:     e.Team,
			Email:    e.Email,
			Password: e.Password,
			IsAdmin:  e.IsAdmin,
		})
		if errors.Is(err, domain.ErrEmployeeExists) {
			res.Skipped++
			log.Info().Str("emp_id", e.EmpID).Msg("employee email taken, skipping")
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", e.EmpID, err)
		}
		res.Created++
		log.Info().Str("emp_id", e.EmpID).Str("name", e.Name).Msg("employee added")
	}
	return res, nil
}
