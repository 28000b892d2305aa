package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Luckywi/balzac-api/internal/api"
	"github.com/Luckywi/balzac-api/internal/booking"
	"github.com/Luckywi/balzac-api/internal/config"
	"github.com/Luckywi/balzac-api/internal/metrics"
	"github.com/Luckywi/balzac-api/internal/notify"
	"github.com/Luckywi/balzac-api/internal/store"
)

func main() {
	// Initialize logger
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	// .env is optional; the config file expands ${VAR} placeholders from it.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("BALZAC_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := store.New(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database, &logger)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("open document store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = db.Close(closeCtx)
	}()

	bookingSvc := booking.NewService(db, &logger)

	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		bookingSvc.UseRedisCache(rdb, cfg.SlotsTTL())
		logger.Info().Str("addr", cfg.Redis.Address).Msg("slot cache enabled")
	}

	if cfg.Push.Enabled {
		pusher, err := notify.New(ctx, notify.Config{
			CredentialsFile: cfg.Push.CredentialsFile,
			ProjectID:       cfg.Push.ProjectID,
			Rate:            cfg.PushRate(),
			Burst:           cfg.PushBurst(),
		}, db, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("init push notifier")
		}
		bookingSvc.UseNotifier(pusher)
		logger.Info().Str("project", cfg.Push.ProjectID).Msg("push notifications enabled")
	}

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
	}

	server := api.NewHTTPServer(api.Options{
		Port:              cfg.Server.Port,
		ReadTimeout:       cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		PrometheusEnabled: cfg.Monitoring.PrometheusEnabled,
	}, bookingSvc, db, &logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Msg("balzac API started")
	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("http server error")
	}
	logger.Info().Msg("balzac API stopped")
}
