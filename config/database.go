package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const connectAttempts = 5

// OpenDatabases opens the Source and Target connections. Both handles are
// held for the lifetime of the process; callers own Close via sql.DB.
func OpenDatabases(cfg *Config) (source *gorm.DB, target *gorm.DB, err error) {
	source, err = openWithRetry(cfg.Source, "source")
	if err != nil {
		return nil, nil, err
	}
	target, err = openWithRetry(cfg.Target, "target")
	if err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

// OpenTarget opens only the Target connection, for tooling that never
// touches the Source database.
func OpenTarget(cfg *Config) (*gorm.DB, error) {
	return openWithRetry(cfg.Target, "target")
}

func openWithRetry(dbCfg DatabaseConfig, role string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dbCfg.DSN()), initConfig())
		if err == nil {
			tunePool(db)
			if pluginErr := db.Use(otelgorm.NewPlugin()); pluginErr != nil {
				log.Printf("%s database connected but failed to install otelgorm plugin: %v", role, pluginErr)
			}
			log.Printf("connected to %s database %s (attempt=%d)", role, dbCfg.Name, attempt)
			return db, nil
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		log.Printf("failed to connect %s database (attempt=%d): %v; retrying in %s", role, attempt, err, sleep)
		time.Sleep(sleep)
	}
	return nil, fmt.Errorf("connect %s database %s@%s:%s: %w", role, dbCfg.Name, dbCfg.Host, dbCfg.Port, err)
}

// Pool sizing follows the batch workload: one worker per run, long-lived
// connections, occasional API reads.
// Env overrides (optional):
// - DB_MAX_OPEN_CONNS (default 20)
// - DB_MAX_IDLE_CONNS (default 10)
// - DB_CONN_MAX_LIFETIME_SECONDS (default 300)
// - DB_CONN_MAX_IDLE_TIME_SECONDS (default 60)
func tunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil || sqlDB == nil {
		return
	}
	maxOpen := intFromEnv("DB_MAX_OPEN_CONNS", 20)
	maxIdle := intFromEnv("DB_MAX_IDLE_CONNS", 10)
	connMaxLife := time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second
	connMaxIdle := time.Duration(intFromEnv("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)) * time.Second

	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if connMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(connMaxLife)
	}
	if connMaxIdle > 0 {
		sqlDB.SetConnMaxIdleTime(connMaxIdle)
	}
}

func initConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         initLog(),
		NamingStrategy: initNamingStrategy(),
	}
}

// InitLog Connection Log Configuration
func initLog() logger.Interface {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:      false,
			LogLevel:      logger.Error,
			SlowThreshold: time.Second,
		},
	)
	return newLogger
}

// InitNamingStrategy Init NamingStrategy
func initNamingStrategy() *schema.NamingStrategy {
	return &schema.NamingStrategy{
		SingularTable: false,
		TablePrefix:   "",
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
