package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/RazanRezq/munjiz/internal/api"
	"github.com/RazanRezq/munjiz/internal/app"
	iauth "github.com/RazanRezq/munjiz/internal/auth"
	"github.com/RazanRezq/munjiz/internal/database"
	"github.com/RazanRezq/munjiz/internal/mailcheck"
	"github.com/RazanRezq/munjiz/internal/services"
	"github.com/RazanRezq/munjiz/pkg/logger"
	"github.com/RazanRezq/munjiz/pkg/mail"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("munjiz-server", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	cfg, err := app.LoadConfig(paths...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := app.ConfigureLogging(cfg.Server); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	log := logger.WithComponent("bootstrap")

	db, err := database.Connect(databaseConfig(cfg))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Shutdown(); err != nil {
			log.Warn("database shutdown", zap.Error(err))
		}
	}()

	if err := database.AutoMigrateAndSeed(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	jwtService, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret: cfg.Auth.JWT.Secret,
		Issuer: cfg.Auth.JWT.Issuer,
		TTL:    cfg.Auth.JWT.TTL,
	})
	if err != nil {
		return fmt.Errorf("initialise jwt service: %w", err)
	}

	mailer, err := mail.NewSMTPMailer(cfg.Email.SMTPSettings())
	if err != nil {
		return fmt.Errorf("initialise smtp mailer: %w", err)
	}

	sender, err := mail.NewVerificationSender(mailer, cfg.Server.BaseURL, "Munjiz", cfg.Server.IsProduction())
	if err != nil {
		return fmt.Errorf("initialise verification sender: %w", err)
	}

	tokens, err := services.NewTokenService(db,
		services.WithTokenExpiry(cfg.Auth.Verification.Expiry),
		services.WithTokenSize(cfg.Auth.Verification.TokenBytes),
	)
	if err != nil {
		return fmt.Errorf("initialise token service: %w", err)
	}

	registrations, err := services.NewRegistrationService(db, tokens, mailcheck.New(), sender)
	if err != nil {
		return fmt.Errorf("initialise registration service: %w", err)
	}

	authenticator, err := services.NewAuthenticator(db)
	if err != nil {
		return fmt.Errorf("initialise authenticator: %w", err)
	}

	workspaces, err := services.NewWorkspaceService(db)
	if err != nil {
		return fmt.Errorf("initialise workspace service: %w", err)
	}

	projects, err := services.NewProjectService(db, workspaces)
	if err != nil {
		return fmt.Errorf("initialise project service: %w", err)
	}

	tasks, err := services.NewTaskService(db, projects)
	if err != nil {
		return fmt.Errorf("initialise task service: %w", err)
	}

	router, err := api.NewRouter(db, jwtService, cfg, api.Services{
		Registrations: registrations,
		Authenticator: authenticator,
		Workspaces:    workspaces,
		Projects:      projects,
		Tasks:         tasks,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.Int("port", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return <-errCh
}

func databaseConfig(cfg *app.Config) database.Config {
	dc := database.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	}

	switch dc.Driver {
	case "postgres", "postgresql":
		dc.Host = cfg.Database.Postgres.Host
		dc.Port = cfg.Database.Postgres.Port
		dc.Name = cfg.Database.Postgres.Database
		dc.User = cfg.Database.Postgres.Username
		dc.Password = cfg.Database.Postgres.Password
	case "mysql":
		dc.Host = cfg.Database.MySQL.Host
		dc.Port = cfg.Database.MySQL.Port
		dc.Name = cfg.Database.MySQL.Database
		dc.User = cfg.Database.MySQL.Username
		dc.Password = cfg.Database.MySQL.Password
	}

	return dc
}
