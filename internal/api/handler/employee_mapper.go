package handler

import (
	"strings"

	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

// --- Request → Service input ---

// trim strips surrounding whitespace so blank values fail the required checks.
func (r *employeeRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Position = strings.TrimSpace(r.Position)
	r.Department = strings.TrimSpace(r.Department)
}

func toEmployeeFields(r employeeRequest) ports.EmployeeFields {
	f := ports.EmployeeFields{
		Name:       r.Name,
		Email:      r.Email,
		Position:   r.Position,
		Department: r.Department,
	}
	if r.Salary != nil {
		f.Salary = *r.Salary
	}
	return f
}

// --- Service result → HTTP response ---

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Position:   e.Position,
		Department: e.Department,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt.UTC(),
		UpdatedAt:  e.UpdatedAt.UTC(),
	}
}

func toEmployeeListResponse(items []*domain.Employee) []employeeResponse {
	out := make([]employeeResponse, len(items))
	for i, e := range items {
		out[i] = toEmployeeResponse(e)
	}
	return out
}

func toAdminSummary(a *domain.Admin, withRole bool) adminSummary {
	s := adminSummary{ID: a.ID, Name: a.Name, Email: a.Email}
	if withRole {
		s.Role = a.Role
	}
	return s
}
