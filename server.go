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

	"github.com/nugie07/armos-cleaning/api"
	"github.com/nugie07/armos-cleaning/cleaning"
	"github.com/nugie07/armos-cleaning/config"
	"github.com/nugie07/armos-cleaning/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("config: ", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	sourceDB, targetDB, err := config.OpenDatabases(cfg)
	if err != nil {
		logger.Fatal("database: ", err)
	}
	defer func() {
		for _, db := range []*gorm.DB{sourceDB, targetDB} {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	}()

	// AutoMigrate can run DDL that blocks tables; allow running it as a
	// separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		if err := models.MigrateTarget(targetDB); err != nil {
			config.LogError(logger, "server.go", "main", "MigrateTarget", nil, err)
			os.Exit(1)
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	svc := cleaning.NewService(sourceDB, targetDB, logger, cleaning.Options{
		BatchSize:  cfg.BatchSize,
		BatchDelay: cfg.BatchDelay,
		Retry: cleaning.Policy{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   cfg.RetryDelay,
			MaxDelay:    2 * time.Minute,
			Exponential: true,
		},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: api.NewRouter(svc, logger),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"port": cfg.APIPort,
	}).Info("armos-cleaning API listening")

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}
