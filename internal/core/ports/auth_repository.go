package ports

import (
	"context"

	"github.com/99minutos/employee-admin/internal/core/domain"
)

// AdminRepository defines persistence for administrator credentials.
type AdminRepository interface {
	// FindByEmail expects an already lowercased email and returns
	// domain.ErrAdminNotFound when no administrator owns it.
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}
