package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"invoiceqa/cache"
	"invoiceqa/config"
	"invoiceqa/db"
	"invoiceqa/handlers"
	"invoiceqa/logging"
	"invoiceqa/service"
)

type cmdServe struct {
	global *cmdGlobal
}

func (c *cmdServe) command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  c.run,
	}
}

func (c *cmdServe) run(cmd *cobra.Command, args []string) error {
	cfg := config.Load(c.global.flagEnvFile)
	if c.global.flagDebug {
		cfg.Debug = true
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// A missing DATABASE_URL is reported per request, as a query error.
	var executor service.Executor
	pg, err := service.NewPostgresService(cfg.Database)
	switch {
	case errors.Is(err, service.ErrDatabaseNotConfigured):
		logger.Warn("DATABASE_URL is not set; queries will fail until it is configured")
		executor = service.Unconfigured()
	case err != nil:
		return err
	default:
		defer pg.Close()
		executor = pg
	}

	var (
		history  handlers.HistoryReader
		recorder service.HistoryRecorder
	)
	if cfg.HistoryPath != "" {
		database, err := db.New(cfg.HistoryPath)
		if err != nil {
			logger.Warn("question history disabled", zap.Error(err))
		} else {
			defer database.Close()
			history = database
			recorder = database
		}
	}

	queries := service.NewQueryService(executor, recorder, logger)
	h := handlers.New(queries, history, cache.New(cfg.ReadyCacheTTL), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Router(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.Strings("allowed_origins", cfg.AllowedOrigins))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
