package ports

import (
	"context"

	"github.com/99minutos/employee-admin/internal/core/domain"
)

// EmployeeRepository defines persistence operations for employees.
// Lookups by id return domain.ErrEmployeeNotFound when the id does not resolve.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	// List returns every employee, most recently created first.
	List(ctx context.Context) ([]*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// FindByEmail matches the stored email exactly.
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Update(ctx context.Context, id string, fields EmployeeFields) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
