package api

import (
	"net"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/employee-admin/docs"
	"github.com/99minutos/employee-admin/internal/api/handler"
	"github.com/99minutos/employee-admin/internal/api/metrics"
	"github.com/99minutos/employee-admin/internal/api/middleware"
	"github.com/99minutos/employee-admin/internal/core/ports"
)

const bodyLimit = "1M"

// Deps are the collaborators the router wires into handlers and middleware.
type Deps struct {
	AuthService     ports.AuthService
	EmployeeService ports.EmployeeService
	Tokens          middleware.TokenVerifier

	// LoginLimiter throttles /api/auth/login. Nil disables throttling.
	LoginLimiter middleware.AttemptLimiter

	// Health lists the dependencies checked by /health/ready.
	Health map[string]handler.Pinger

	CORSOrigins []string

	// TrustedProxies lists the CIDRs whose X-Forwarded-For header is honoured
	// when resolving the client IP. Empty means the peer address is used.
	TrustedProxies []string

	Logger zerolog.Logger

	// Registry receives the HTTP and application metrics served on /metrics.
	// A private registry is created when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.New(reg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = ipExtractor(deps.TrustedProxies, deps.Logger)
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(deps.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "employee_admin",
		Registerer: reg,
	}))

	authHandler := handler.NewAuthHandler(deps.AuthService, m)
	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeService, m)
	healthHandler := handler.NewHealthHandler(deps.Health)
	requireAuth := middleware.Auth(deps.Tokens, m, deps.Logger)

	api := e.Group("/api")

	// --- Auth routes ---
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	if deps.LoginLimiter != nil {
		authGroup.POST("/login", authHandler.Login, middleware.LoginRateLimit(deps.LoginLimiter, m, deps.Logger))
	} else {
		authGroup.POST("/login", authHandler.Login)
	}
	authGroup.GET("/me", authHandler.Me, requireAuth)

	// --- Employee routes (token required) ---
	employees := api.Group("/employees", requireAuth)
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func ipExtractor(cidrs []string, log zerolog.Logger) echo.IPExtractor {
	opts := make([]echo.TrustOption, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			log.Warn().Str("cidr", cidr).Msg("ignoring invalid trusted proxy range")
			continue
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	if len(opts) == 0 {
		return echo.ExtractIPDirect()
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
