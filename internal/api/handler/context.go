package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/employee-admin/internal/api/middleware"
	"github.com/99minutos/employee-admin/internal/auth"
)

// ctxClaims extracts the claims injected by the Auth middleware. Their absence
// means the route was registered without the middleware; reject with 401.
func ctxClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok || claims.AdminID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
