package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

type EmployeeRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{items: make(map[string]domain.Employee)}
}

func (r *EmployeeRepository) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailOwner(e.Email) != "" {
		return nil, domain.ErrEmployeeEmailTaken
	}

	stored := *e
	stored.ID = uuid.NewString()
	r.items[stored.ID] = stored

	out := stored
	return &out, nil
}

func (r *EmployeeRepository) List(_ context.Context) ([]*domain.Employee, error) {
	r.mu.RLock()
	out := make([]*domain.Employee, 0, len(r.items))
	for _, e := range r.items {
		e := e
		out = append(out, &e)
	}
	r.mu.RUnlock()

	// Newest first; equal timestamps fall back to id order.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EmployeeRepository) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return &e, nil
}

func (r *EmployeeRepository) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := r.emailOwner(email)
	if id == "" {
		return nil, domain.ErrEmployeeNotFound
	}
	e := r.items[id]
	return &e, nil
}

func (r *EmployeeRepository) Update(_ context.Context, id string, f ports.EmployeeFields) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	if owner := r.emailOwner(f.Email); owner != "" && owner != id {
		return nil, domain.ErrEmployeeEmailTaken
	}

	e.Name = f.Name
	e.Email = f.Email
	e.Position = f.Position
	e.Department = f.Department
	e.Salary = f.Salary
	e.UpdatedAt = time.Now().UTC()
	r.items[id] = e

	return &e, nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.items, id)
	return nil
}

// emailOwner returns the id of the employee holding email, or "". Callers hold mu.
func (r *EmployeeRepository) emailOwner(email string) string {
	for id, e := range r.items {
		if e.Email == email {
			return id
		}
	}
	return ""
}
