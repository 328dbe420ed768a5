package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diegoclair/vigil-bot/internal/config"
	"github.com/diegoclair/vigil-bot/internal/database"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/service"
	"github.com/diegoclair/vigil-bot/internal/events"
	"github.com/diegoclair/vigil-bot/internal/handlers"
	"github.com/diegoclair/vigil-bot/migrator/sqlite"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("running migrations")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	slackClient := slack.New(cfg.SlackBotToken)

	publisher := newPublisher(cfg)
	defer publisher.Close()

	contestDefaults, err := cfg.Bot.Defaults.Contest()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid group defaults")
	}

	instance := service.NewInstance(database.NewInstance(db), slackClient, publisher, service.Options{
		Admins: cfg.Bot.Admins,
		Defaults: service.GroupDefaults{
			Timezone:        cfg.Bot.Defaults.Timezone,
			TitleTemplate:   cfg.Bot.Defaults.TitleTemplate,
			BroadcastStatus: cfg.Bot.Defaults.BroadcastStatus,
			BroadcastWinner: cfg.Bot.Defaults.BroadcastWinner,
			Contest:         contestDefaults,
		},
		TickSpec:    cfg.TickSpec,
		TickWorkers: cfg.TickWorkers,
		Clock:       clockwork.NewRealClock(),
	})

	if err := instance.Scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer instance.Scheduler.Stop()

	mux := http.NewServeMux()
	handlers.New(instance.Vigil, cfg.SlackSigningSecret).Register(mux)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down server")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// newPublisher connects to NATS when a URL is configured. Winner events are
// dropped otherwise.
func newPublisher(cfg *config.Config) contract.Publisher {
	if cfg.NatsURL == "" {
		return events.NopPublisher{}
	}

	natsCfg := events.DefaultNATSConfig()
	natsCfg.URL = cfg.NatsURL
	natsCfg.SubjectPrefix = cfg.NatsSubjectPrefix

	publisher, err := events.NewNATSPublisher(natsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to NATS")
	}
	log.Info().Str("url", cfg.NatsURL).Msg("publishing winner events to NATS")

	return publisher
}
