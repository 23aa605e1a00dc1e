// Command api serves the employee admin REST API.
//
// @title                       Employee Admin API
// @version                     1.0
// @description                 Administrator authentication and employee record management.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/99minutos/employee-admin/internal/app"
	"github.com/99minutos/employee-admin/internal/pkg/config"
	"github.com/99minutos/employee-admin/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "employee-admin",
		Env:     cfg.Env,
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer a.Close(context.Background())

	if err := a.SeedAdmin(ctx); err != nil {
		log.Error().Err(err).Msg("bootstrap administrator not created")
	}

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
		a.Close(context.Background())
		os.Exit(1)
	}
}
