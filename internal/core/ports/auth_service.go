package ports

import (
	"context"
	"time"

	"github.com/99minutos/employee-admin/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *domain.Admin
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Admin, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
