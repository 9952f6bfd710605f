package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/config"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/logging"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/models"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/sample"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/sentinel"
)

// main forwards one sample phishing detection and exits non-zero if it was not accepted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	submitter, err := sentinel.New(cfg.Sentinel(), logger)
	if err != nil {
		log.Fatal(err)
	}

	ok := submitter.Submit(context.Background(), []models.Record{sample.PhishingDetection(time.Now())})
	if !ok {
		_ = logger.Sync()
		os.Exit(1)
	}
}
