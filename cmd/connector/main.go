package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/config"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/handlers"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/httpserver"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/logging"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/sentinel"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/store"
)

// main boots the connector: config → logger → submitter → ledger → HTTP server.
func main() {
	// Credentials are checked here; a bad WORKSPACE_ID or SHARED_KEY never reaches a request.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	submitter, err := sentinel.New(cfg.Sentinel(), logger.Named("sentinel"))
	if err != nil {
		logger.Fatal("invalid log analytics configuration", zap.Error(err))
	}

	// The ledger is optional; without DB_URL submissions are forwarded but not recorded.
	var ledger handlers.Ledger
	if cfg.DBURL != "" {
		db, err := store.NewPostgresStore(cfg.DBURL)
		if err != nil {
			logger.Fatal("connect ledger", zap.Error(err))
		}
		defer db.Close()

		if err := db.EnsureSchema(context.Background()); err != nil {
			logger.Fatal("apply ledger schema", zap.Error(err))
		}
		ledger = db
	}

	if len(cfg.APIKeys) == 0 {
		logger.Warn("API_KEYS is empty; every /detections request will be rejected")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpserver.NewRouter(cfg.APIKeys, submitter, ledger, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server started",
		zap.String("addr", cfg.ListenAddr),
		zap.String("log_type", cfg.LogType),
		zap.Bool("ledger", ledger != nil),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
