// Command create-admin provisions the storefront admin account.
//
// Credentials come from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME unless
// overridden by flags. With --reset an existing account is deleted and
// created again with the new password.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"glamify/internal/config"
	"glamify/internal/database"
	"glamify/internal/logger"
	"glamify/internal/repository"
	"glamify/internal/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	flags := pflag.NewFlagSet("create-admin", pflag.ExitOnError)
	email := flags.String("email", cfg.Admin.Email, "admin email address")
	password := flags.String("password", cfg.Admin.Password, "admin password")
	name := flags.String("name", cfg.Admin.Name, "admin display name")
	reset := flags.Bool("reset", false, "delete and recreate the admin if it exists")
	_ = flags.Parse(os.Args[1:])

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := run(cfg, log, *email, *password, *name, *reset); err != nil {
		log.Error("Admin provisioning failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger, email, password, name string, reset bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbService, err := database.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB(), "migrations", log); err != nil {
		return err
	}

	provisioner := service.NewAdminProvisioner(repository.NewUserRepository(dbService.DB()), log)

	result, user, err := provisioner.Provision(ctx, email, password, name, reset)
	if err != nil {
		return err
	}

	switch result {
	case service.ProvisionExists:
		fmt.Printf("Admin %s already exists (id %s). Use --reset to recreate it.\n", user.Email, user.ID)
	case service.ProvisionRecreated:
		fmt.Printf("Admin %s recreated (id %s).\n", user.Email, user.ID)
	default:
		fmt.Printf("Admin %s created (id %s).\n", user.Email, user.ID)
	}
	return nil
}
