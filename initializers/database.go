package initializers

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("unknown database driver")

func dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql", "":
		return mysql.Open(cfg.DBURL), nil
	case "postgres":
		return postgres.Open(cfg.DBURL), nil
	case "sqlite":
		return sqlite.Open(cfg.DBURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DBDriver)
	}
}

// ConnectToDB opens the configured database. Driver errors are translated to gorm's sentinel errors.
func ConnectToDB(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is not set")
	}
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Silent
	if cfg.DBDebug {
		level = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	log.Info("Connected to database", zap.String("driver", cfg.DBDriver))
	return db, nil
}
