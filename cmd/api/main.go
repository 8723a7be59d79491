package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mpesarelay/internal/config"
	"mpesarelay/internal/domain/credential"
	httpx "mpesarelay/internal/http"
	"mpesarelay/internal/metrics"
	"mpesarelay/internal/provider/mpesa"
	"mpesarelay/internal/store/memory"
	"mpesarelay/internal/store/postgres"
	"mpesarelay/internal/store/repositories"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New("mpesarelay")

	opts := []mpesa.Option{
		mpesa.WithTimeout(cfg.Mpesa.HTTPTimeout),
		mpesa.WithObserver(m),
	}
	if cfg.Mpesa.BaseURL != "" {
		opts = append(opts, mpesa.WithBaseURL(cfg.Mpesa.BaseURL))
	}
	client := mpesa.New(cfg.Mpesa.Credentials, cfg.Mpesa.Environment, opts...)

	// API keys: postgres, else static keys, else open
	var clients repositories.APIClientRepository
	switch {
	case cfg.DB.DSN != "":
		pool := postgres.MustOpen(ctx, cfg.DB.DSN)
		defer pool.Close()
		clients = postgres.NewRepo(pool)
	case len(cfg.Gateway.APIKeys) > 0:
		clients = memory.NewAPIClients(cfg.Gateway.APIKeys)
	default:
		log.Warn().Msg("no DB_DSN or GATEWAY_API_KEYS configured, /api/v1 is unauthenticated")
	}

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:     cfg,
		Daraja:     client,
		APIClients: clients,
		Metrics:    m.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().
			Str("environment", cfg.App.Env).
			Msgf("M-Pesa relay listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}

func setupLogging(cfg config.Cfg) {
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Mpesa.Environment == credential.EnvironmentSandbox {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
