package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/99minutos/employee-admin/internal/api/metrics"
	"github.com/99minutos/employee-admin/internal/core/domain"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "secret1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Admin{ID: "a1", Name: in.Name, Email: in.Email, Role: domain.RoleAdmin}, nil
		},
	}
	m := metrics.NewNop()
	handler := NewAuthHandler(stub, m)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	admin, ok := resp["admin"].(map[string]any)
	if !ok {
		t.Fatalf("expected admin in response")
	}
	if admin["id"] != "a1" || admin["email"] != "alice@example.com" {
		t.Fatalf("unexpected admin payload: %+v", admin)
	}
	if _, leaked := admin["password"]; leaked {
		t.Fatalf("password must not be returned")
	}
	if n := testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("success")); n != 1 {
		t.Fatalf("expected success counted, got %v", n)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error) {
			return nil, domain.ErrAdminEmailTaken
		},
	}
	m := metrics.NewNop()
	handler := NewAuthHandler(stub, m)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", `{"name":"Bob"}`)
	err := handler.Register(c)
	if !errors.Is(err, domain.ErrAdminEmailTaken) {
		t.Fatalf("expected ErrAdminEmailTaken, got %v", err)
	}
	if n := testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("duplicate")); n != 1 {
		t.Fatalf("expected duplicate counted, got %v", n)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, metrics.NewNop())

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", `{"name":`)
	err := handler.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	expires := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:     "signed.jwt.token",
				ExpiresAt: expires,
				Admin:     &domain.Admin{ID: "a1", Name: "Alice", Email: email, Role: domain.RoleAdmin},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, metrics.NewNop())

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "signed.jwt.token" || !resp.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	if resp.Admin.Role != domain.RoleAdmin {
		t.Fatalf("expected role in login response, got %+v", resp.Admin)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	m := metrics.NewNop()
	handler := NewAuthHandler(stub, m)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"x@example.com","password":"nope"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if n := testutil.ToFloat64(m.LoginsTotal.WithLabelValues("invalid_credentials")); n != 1 {
		t.Fatalf("expected invalid_credentials counted, got %v", n)
	}
}
