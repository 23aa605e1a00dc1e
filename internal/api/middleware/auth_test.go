package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/99minutos/employee-admin/internal/api/metrics"
	"github.com/99minutos/employee-admin/internal/auth"
)

func runAuth(t *testing.T, m *metrics.Metrics, header string) (*httptest.ResponseRecorder, *auth.Claims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *auth.Claims
	mw := Auth(auth.NewManager("secret", time.Hour), m, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			t.Fatalf("claims not set")
		}
		got = claims
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, got
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, _, err := auth.NewManager("secret", time.Hour).Issue("admin-1", "admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, claims := runAuth(t, metrics.NewNop(), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if claims == nil || claims.AdminID != "admin-1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := func() string {
		m := auth.NewManager("secret", time.Millisecond)
		tok, _, err := m.Issue("admin-1", "admin")
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		time.Sleep(1100 * time.Millisecond)
		return tok
	}()
	foreign, _, err := auth.NewManager("other-secret", time.Hour).Issue("admin-1", "admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tests := []struct {
		name   string
		header string
		reason string
		want   string
	}{
		{"missing header", "", "no_token", "no authorization token provided"},
		{"basic scheme", "Basic xyz", "bad_format", "invalid token format"},
		{"lowercase scheme", "bearer abc", "bad_format", "invalid token format"},
		{"bare bearer", "Bearer", "missing_token", "token is missing"},
		{"blank token", "Bearer    ", "missing_token", "token is missing"},
		{"garbage token", "Bearer not-a-token", "invalid", "invalid token"},
		{"wrong secret", "Bearer " + foreign, "invalid", "invalid token"},
		{"expired token", "Bearer " + expired, "expired", "token has expired"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := metrics.NewNop()
			rec, _ := runAuth(t, m, tc.header)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if got := decodeError(t, rec); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if n := testutil.ToFloat64(m.AuthFailuresTotal.WithLabelValues(tc.reason)); n != 1 {
				t.Fatalf("expected reason %q counted once, got %v", tc.reason, n)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, reason, _ := bearerToken("Bearer  abc ")
	if reason != "" || token != "abc" {
		t.Fatalf("unexpected result: %q %q", token, reason)
	}
}
