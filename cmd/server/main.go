package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jacksonlee411/jobly/internal/config"
	"github.com/jacksonlee411/jobly/internal/logging"
	"github.com/jacksonlee411/jobly/internal/server"
)

func main() {
	boot := logging.New("info", os.Stderr)
	if err := config.LoadDotEnv(); err != nil {
		boot.Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.FromEnv()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database pool")
	}
	defer pool.Close()

	h, err := server.NewHandler(cfg, pool, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build handler")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.Env).Str("authz_mode", string(cfg.AuthzMode)).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("serve")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}
}
