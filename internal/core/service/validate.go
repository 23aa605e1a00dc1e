package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

var validate = validator.New()

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// normalizeEmployee trims the text fields and enforces the record invariants.
func normalizeEmployee(in ports.EmployeeFields) (ports.EmployeeFields, error) {
	out := ports.EmployeeFields{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Position:   strings.TrimSpace(in.Position),
		Department: strings.TrimSpace(in.Department),
		Salary:     in.Salary,
	}
	if out.Name == "" || out.Email == "" || out.Position == "" || out.Department == "" {
		return out, domain.NewValidationError("fields", "all fields are required")
	}
	if !domain.SalaryInRange(out.Salary) {
		return out, domain.NewValidationError("salary", "salary must be between 0 and 999999999")
	}
	return out, nil
}
