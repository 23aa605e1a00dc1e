// Package app assembles the employee admin service from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/employee-admin/internal/api"
	"github.com/99minutos/employee-admin/internal/api/handler"
	"github.com/99minutos/employee-admin/internal/auth"
	"github.com/99minutos/employee-admin/internal/core/ports"
	"github.com/99minutos/employee-admin/internal/core/service"
	"github.com/99minutos/employee-admin/internal/infrastructure/db/memory"
	mongodb "github.com/99minutos/employee-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/employee-admin/internal/infrastructure/db/redis"
	"github.com/99minutos/employee-admin/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server and the connections it depends on.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	echo   *echo.Echo
	server *http.Server

	Auth      *service.AuthService
	Employees *service.EmployeeService

	mongoClient *mongo.Client
	redisClient *goredis.Client
}

// New connects the configured storage and builds the router.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	admins, employees, err := a.openStorage(ctx)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	a.Auth = service.NewAuthService(admins, tokens, log)
	a.Employees = service.NewEmployeeService(employees, log)

	deps := api.Deps{
		AuthService:     a.Auth,
		EmployeeService: a.Employees,
		Tokens:          tokens,
		Health:          a.healthChecks(),
		CORSOrigins:     cfg.CORSOrigins,
		TrustedProxies:  cfg.TrustedProxies,
		Logger:          log,
		Registry:        newRegistry(),
	}
	if cfg.RateLimit.Enabled && a.redisClient != nil {
		deps.LoginLimiter = redisdb.NewLoginLimiter(a.redisClient, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	}

	a.echo = api.NewRouter(deps)
	a.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.echo,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return a, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.echo
}

// SeedAdmin creates the configured bootstrap administrator if it is missing.
func (a *App) SeedAdmin(ctx context.Context) error {
	if !a.cfg.Admin.Enabled() {
		return nil
	}
	created, err := a.Auth.EnsureAdmin(ctx, ports.RegisterInput{
		Name:     a.cfg.Admin.Name,
		Email:    a.cfg.Admin.Email,
		Password: a.cfg.Admin.Password,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		a.log.Info().Str("email", a.cfg.Admin.Email).Msg("bootstrap administrator created")
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", a.cfg.Port).Str("env", a.cfg.Env).Msg("server starting")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	a.log.Info().Msg("shutdown complete")
	return nil
}

// Close releases the storage connections.
func (a *App) Close(ctx context.Context) {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error().Err(err).Msg("close redis")
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Error().Err(err).Msg("disconnect mongo")
		}
	}
}

func (a *App) openStorage(ctx context.Context) (ports.AdminRepository, ports.EmployeeRepository, error) {
	if a.cfg.StorageBackend == "memory" {
		a.log.Warn().Msg("using in-memory storage; data is lost on restart")
		return memory.NewAdminRepository(), memory.NewEmployeeRepository(), nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	a.mongoClient = client
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return nil, nil, err
	}

	if a.cfg.RateLimit.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		a.redisClient = rdb
	}

	return mongodb.NewAdminRepository(db), mongodb.NewEmployeeRepository(db), nil
}

func (a *App) healthChecks() map[string]handler.Pinger {
	checks := make(map[string]handler.Pinger)
	if a.mongoClient != nil {
		client := a.mongoClient
		checks["mongodb"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})
	}
	if a.redisClient != nil {
		client := a.redisClient
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	return checks
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
