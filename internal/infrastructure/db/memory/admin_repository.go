// Package memory provides map-backed repositories for local runs and tests.
// Records are lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/99minutos/employee-admin/internal/core/domain"
)

type AdminRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Admin
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{byEmail: make(map[string]domain.Admin)}
}

func (r *AdminRepository) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[admin.Email]; exists {
		return nil, domain.ErrAdminEmailTaken
	}

	stored := *admin
	stored.ID = uuid.NewString()
	r.byEmail[stored.Email] = stored

	out := stored
	return &out, nil
}

func (r *AdminRepository) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.RLock()
	a, ok := r.byEmail[email]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return &a, nil
}
