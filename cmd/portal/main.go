package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/app/services"
	"github.com/oguzk/eduportal/internal/config"
	"github.com/oguzk/eduportal/internal/console"
	"github.com/oguzk/eduportal/internal/pkg/auth"
	"github.com/oguzk/eduportal/internal/pkg/logger"
	"github.com/oguzk/eduportal/internal/seed"
	"github.com/oguzk/eduportal/internal/storage/jsonstore"
)

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	configPath := os.Getenv("PORTAL_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.PrettyLogging(),
	})

	store, err := jsonstore.New(cfg.App.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize data store")
	}

	repos := repositories.New(store)
	if err := repos.Load(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load data")
	}
	logger.Info().
		Int("users", repos.Users.Count()).
		Int("course_sections", repos.Courses.Count()).
		Msg("Data loaded")

	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey: cfg.Session.Secret,
		Lifetime:  cfg.SessionLifetime(),
		Issuer:    cfg.Session.Issuer,
	})
	svcs := services.New(repos, sessions, store)

	if cfg.App.Seed {
		if err := seed.CreateDefaultData(repos, svcs.Enrollment); err != nil {
			logger.Error().Err(err).Msg("Seeding default data reported errors")
		}
	}

	// Surface any roster/enrollment-set drift left by earlier runs before
	// the user starts mutating state on top of it.
	svcs.Enrollment.Reconcile()

	if removed, err := store.CleanupBackups(cfg.BackupRetention()); err != nil {
		logger.Warn().Err(err).Msg("Backup cleanup failed")
	} else if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Expired backups removed")
	}

	app := console.New(svcs, store, console.NewPrompter(os.Stdin, os.Stdout))
	if err := app.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Console session ended with error")
	}
}
