package handler

import (
	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	resp := employeeResponse{
		ID:      e.ID,
		EmpID:   e.EmpID,
		Name:    e.Name,
		Role:    e.Role,
		Email:   e.Email,
		IsAdmin: e.IsAdmin,
	}
	if e.Team != "" {
		team := e.Team
		resp.Team = &team
	}
	return resp
}

func toEmployeeListResponse(emps []*domain.Employee) []employeeResponse {
	out := make([]employeeResponse, len(emps))
	for i, e := range emps {
		out[i] = toEmployeeResponse(e)
	}
	return out
}

func toCreateEmployeeInput(req createEmployeeRequest) ports.CreateEmployeeInput {
	return ports.CreateEmployeeInput{
		EmpID:    req.EmpID,
		Name:     req.Name,
		Role:     req.Role,
		Team:     req.Team,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	}
}

func toEmployeePatch(req updateEmployeeRequest) domain.EmployeePatch {
	return domain.EmployeePatch{
		EmpID:    req.EmpID,
		Name:     req.Name,
		Role:     req.Role,
		Team:     req.Team,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
		Password: req.Password,
	}
}
