package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/employee-admin/internal/auth"
	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

type stubAdminRepo struct {
	admins  map[string]*domain.Admin
	findErr error
	nextID  int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, exists := r.admins[admin.Email]; exists {
		return nil, domain.ErrAdminEmailTaken
	}
	r.nextID++
	stored := cloneAdmin(admin)
	stored.ID = fmt.Sprintf("admin-%d", r.nextID)
	r.admins[stored.Email] = stored
	return cloneAdmin(stored), nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.admins[email]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return cloneAdmin(a), nil
}

func newAuthService(repo ports.AdminRepository) *AuthService {
	return NewAuthService(repo, auth.NewManager("secret", 8*time.Hour), zerolog.Nop())
}

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{Name: "khushal", Email: "admin@example.com", Password: "khushal1132"}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthService(repo)

	admin, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "  khushal ",
		Email:    " Admin@Example.COM ",
		Password: "khushal1132",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if admin.ID == "" {
		t.Fatalf("expected generated id")
	}
	if admin.Name != "khushal" || admin.Email != "admin@example.com" {
		t.Fatalf("expected trimmed, lowercased fields, got %+v", admin)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", admin.Role)
	}
	if admin.PasswordHash == "khushal1132" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("khushal1132")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_ValidationOrder(t *testing.T) {
	cases := []struct {
		name  string
		input ports.RegisterInput
		field string
		msg   string
	}{
		{"all empty", ports.RegisterInput{}, "name", "name is required"},
		{"blank name", ports.RegisterInput{Name: "   ", Email: "bad", Password: "1"}, "name", "name is required"},
		{"missing email", ports.RegisterInput{Name: "a", Password: "1"}, "email", "email is required"},
		{"malformed email", ports.RegisterInput{Name: "a", Email: "not-an-email", Password: "1"}, "email", "invalid email format"},
		{"short password", ports.RegisterInput{Name: "a", Email: "a@x.com", Password: "12345"}, "password", "password must be at least 6 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAuthService(newStubAdminRepo())
			_, err := svc.Register(context.Background(), tc.input)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field || ve.Message != tc.msg {
				t.Fatalf("expected %s/%q, got %s/%q", tc.field, tc.msg, ve.Field, ve.Message)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubAdminRepo())

	if _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	dup := validRegistration()
	dup.Email = "ADMIN@example.com"
	if _, err := svc.Register(context.Background(), dup); !errors.Is(err, domain.ErrAdminEmailTaken) {
		t.Fatalf("expected ErrAdminEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_RepositoryFailure(t *testing.T) {
	repo := newStubAdminRepo()
	repo.findErr = errors.New("connection reset")
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), validRegistration()); err == nil || errors.Is(err, domain.ErrAdminEmailTaken) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubAdminRepo())

	registered, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "Admin@Example.com", "khushal1132")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.Admin.ID != registered.ID || result.Admin.Email != "admin@example.com" {
		t.Fatalf("unexpected admin: %+v", result.Admin)
	}

	claims, err := auth.NewManager("secret", 8*time.Hour).Verify(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.AdminID != registered.ID || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 8*time.Hour {
		t.Fatalf("expected 8h lifetime, got %s", got)
	}
	if !result.ExpiresAt.Equal(claims.ExpiresAt.Time) {
		t.Fatalf("ExpiresAt mismatch: %s vs %s", result.ExpiresAt, claims.ExpiresAt.Time)
	}
}

func TestAuthService_Login_GenericFailures(t *testing.T) {
	svc := newAuthService(newStubAdminRepo())
	_, _ = svc.Register(context.Background(), validRegistration())

	_, wrongPassword := svc.Login(context.Background(), "admin@example.com", "badpass")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "khushal1132")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages must not reveal which field was wrong: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthService(newStubAdminRepo())

	for _, in := range [][2]string{{"", "pass"}, {"a@x.com", ""}, {"  ", ""}} {
		_, err := svc.Login(context.Background(), in[0], in[1])
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || !strings.Contains(ve.Message, "required") {
			t.Fatalf("expected required-field error for %q, got %v", in, err)
		}
	}
}

func TestAuthService_EnsureAdmin_Idempotent(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAuthService(repo)

	created, err := svc.EnsureAdmin(context.Background(), validRegistration())
	if err != nil || !created {
		t.Fatalf("expected first call to create admin, got %v %v", created, err)
	}

	created, err = svc.EnsureAdmin(context.Background(), validRegistration())
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op, got %v %v", created, err)
	}
	if len(repo.admins) != 1 {
		t.Fatalf("expected exactly one admin, got %d", len(repo.admins))
	}
}
