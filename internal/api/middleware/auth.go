package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/employee-admin/internal/api/metrics"
	"github.com/99minutos/employee-admin/internal/auth"
)

const claimsKey = "auth.claims"

// TokenVerifier decodes a raw bearer token into its claims.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Auth rejects requests that do not carry a valid bearer token and stores the
// decoded claims on the context for downstream handlers.
func Auth(verifier TokenVerifier, m *metrics.Metrics, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, reason, msg := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if reason == "" {
				claims, err := verifier.Verify(raw)
				if err == nil {
					c.Set(claimsKey, claims)
					return next(c)
				}
				reason, msg = verifyFailure(err)
			}

			m.AuthFailuresTotal.WithLabelValues(reason).Inc()
			log.Warn().
				Str("reason", reason).
				Str("path", c.Request().URL.Path).
				Str("ip", c.RealIP()).
				Msg("authentication rejected")
			return echo.NewHTTPError(http.StatusUnauthorized, msg)
		}
	}
}

// ClaimsFromContext returns the claims stored by Auth.
func ClaimsFromContext(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// bearerToken extracts the token from an Authorization header value. A non-empty
// reason means the header was rejected before verification.
func bearerToken(header string) (token, reason, msg string) {
	switch {
	case header == "":
		return "", "no_token", "no authorization token provided"
	case header == "Bearer":
		return "", "missing_token", "token is missing"
	case !strings.HasPrefix(header, "Bearer "):
		return "", "bad_format", "invalid token format"
	}
	token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", "missing_token", "token is missing"
	}
	return token, "", ""
}

func verifyFailure(err error) (reason, msg string) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired", "token has expired"
	case errors.Is(err, auth.ErrTokenInvalid):
		return "invalid", "invalid token"
	default:
		return "other", "authentication failed"
	}
}
