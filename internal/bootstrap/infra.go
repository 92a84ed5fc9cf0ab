package bootstrap

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gopher-blog/internal/config"
	"gopher-blog/internal/platform/database"
)

// NewLogger builds the process logger: text for development, JSON elsewhere.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.Env == "dev" || cfg.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// OpenDatabase connects with the configured driver and migrates the schema.
func OpenDatabase(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.DSN(), log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.Database.Driver).Info("database ready")
	return db, nil
}
