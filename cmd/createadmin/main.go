// Command createadmin registers an administrator directly in the store.
// Flags default to ADMIN_NAME, ADMIN_EMAIL and ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/employee-admin/internal/auth"
	"github.com/99minutos/employee-admin/internal/core/ports"
	"github.com/99minutos/employee-admin/internal/core/service"
	mongodb "github.com/99minutos/employee-admin/internal/infrastructure/db/mongo"
	"github.com/99minutos/employee-admin/internal/pkg/config"
	"github.com/99minutos/employee-admin/pkg/logger"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadBootstrap(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "createadmin"})

	name := flag.String("name", cfg.Admin.Name, "administrator name")
	email := flag.String("email", cfg.Admin.Email, "administrator email")
	password := flag.String("password", cfg.Admin.Password, "administrator password (min 6 characters)")
	flag.Parse()

	input := ports.RegisterInput{Name: *name, Email: *email, Password: *password}
	if err := run(ctx, cfg, log, input); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "createadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.BootstrapConfig, log zerolog.Logger, input ports.RegisterInput) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongo")
		}
	}()

	created, err := bootstrap(ctx, db, log, input)
	if err != nil {
		return err
	}
	if !created {
		fmt.Printf("administrator %s already exists\n", input.Email)
		return nil
	}
	fmt.Printf("administrator %s created\n", input.Email)
	return nil
}

// bootstrap ensures the indexes exist and registers the administrator unless
// its email is already taken. It reports whether a record was created.
func bootstrap(ctx context.Context, db *mongo.Database, log zerolog.Logger, input ports.RegisterInput) (bool, error) {
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return false, err
	}

	// Registration never signs a token, so a throwaway secret is enough.
	svc := service.NewAuthService(
		mongodb.NewAdminRepository(db),
		auth.NewManager(uuid.NewString(), 0),
		log,
	)
	return svc.EnsureAdmin(ctx, input)
}
