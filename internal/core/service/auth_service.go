package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/employee-admin/internal/auth"
	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

const minPasswordLength = 6

// TokenIssuer signs session tokens for authenticated administrators.
type TokenIssuer interface {
	Issue(adminID, role string) (string, *auth.Claims, error)
}

// AuthService implements administrator registration and login.
type AuthService struct {
	repo   ports.AdminRepository
	tokens TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.AdminRepository, tokens TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register validates the input, hashes the password and stores a new administrator.
// Checks run in order name, email, password; the first failure is returned.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Admin, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if err := validateRegistration(name, email, input.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrAdminEmailTaken
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("admin_id", created.ID).Str("email", created.Email).Msg("admin registered")
	return created, nil
}

// Login checks the credentials and issues a session token. Unknown emails and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("credentials", "email and password are required")
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		s.logger.Debug().Str("admin_id", admin.ID).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Admin:     admin,
	}, nil
}

// EnsureAdmin registers the administrator unless one already owns the email.
// It reports whether a new record was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, input ports.RegisterInput) (bool, error) {
	_, err := s.Register(ctx, input)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrAdminEmailTaken):
		return false, nil
	default:
		return false, err
	}
}

func validateRegistration(name, email, password string) error {
	switch {
	case name == "":
		return domain.NewValidationError("name", "name is required")
	case email == "":
		return domain.NewValidationError("email", "email is required")
	case !isEmail(email):
		return domain.NewValidationError("email", "invalid email format")
	case len(password) < minPasswordLength:
		return domain.NewValidationError("password", "password must be at least 6 characters")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
