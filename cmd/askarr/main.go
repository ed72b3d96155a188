package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/askarr/askarr/internal/api"
	"github.com/askarr/askarr/internal/config"
	"github.com/askarr/askarr/internal/credentials"
	"github.com/askarr/askarr/internal/database"
	"github.com/askarr/askarr/internal/logger"
	"github.com/askarr/askarr/internal/overseerr"
	"github.com/askarr/askarr/internal/request"
	"github.com/askarr/askarr/internal/scheduler"
	"github.com/askarr/askarr/internal/settings"
	"github.com/askarr/askarr/internal/voice"
)

func main() {
	// Local .env files are a convenience for development; absence is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Msg("starting Askarr")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	log.Info().Msg("running database migrations")
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	store := settings.NewStore(db.Conn(), log.Logger)

	// Direct configuration wins over the persisted settings store.
	sources := credentials.Chain{
		credentials.Static{
			credentials.KeyURL:    cfg.Overseerr.URL,
			credentials.KeyAPIKey: cfg.Overseerr.APIKey,
		},
		credentials.NewStoreSource(store, cfg.Account.ID),
	}

	creds, err := credentials.Resolve(context.Background(), sources)
	if err != nil {
		log.Fatal().Err(err).
			Msg("Overseerr URL and API key must be configured via ASKARR_OVERSEERR_URL / ASKARR_OVERSEERR_API_KEY or the settings store")
	}

	client := overseerr.NewClient(overseerr.Config{
		BaseURL: creds.BaseURL,
		APIKey:  creds.APIKey,
		Timeout: cfg.Overseerr.Timeout,
	}, log.Logger)

	pipeline := request.NewService(client, log.Logger)
	formatter := request.Formatter{VerboseErrors: cfg.Overseerr.VerboseErrors}

	sched, err := scheduler.New(log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	if err := sched.RegisterTask(scheduler.TaskConfig{
		Name:       "overseerr-connectivity",
		Cron:       cfg.Overseerr.HealthCron,
		RunOnStart: true,
		Func: func(ctx context.Context) error {
			return client.Test(ctx)
		},
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to register connectivity check")
	}
	sched.Start()

	server := api.NewServer(cfg, voice.NewHandlers(pipeline, formatter, log.Logger), log.Logger)

	go func() {
		if err := server.Start(cfg.Server.Address()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown failed")
	}
}
