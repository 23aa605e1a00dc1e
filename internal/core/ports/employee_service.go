package ports

import (
	"context"

	"github.com/99minutos/employee-admin/internal/core/domain"
)

// EmployeeFields holds the mutable fields of an employee, shared by create and update.
type EmployeeFields struct {
	Name       string
	Email      string
	Position   string
	Department string
	Salary     float64
}

// EmployeeService defines use-case operations for employee records.
type EmployeeService interface {
	Create(ctx context.Context, input EmployeeFields) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	Update(ctx context.Context, id string, input EmployeeFields) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
