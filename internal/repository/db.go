package repository

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sheetforge/sheetforge/internal/common"
	"github.com/sheetforge/sheetforge/internal/entity"
)

// Open connects the record store and creates the schema. A Postgres DSN
// selects the pgx-backed driver; an empty DSN falls back to a local sqlite
// file at sqlitePath.
func Open(cfg common.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var dialector gorm.Dialector
	if cfg.DSN != "" {
		logger.Info("db.open", "driver", "postgres")
		dialector = postgres.Open(cfg.DSN)
	} else {
		logger.Info("db.open", "driver", "sqlite", "path", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&entity.ExtractionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate extraction_records: %w", err)
	}

	logger.Info("db.ready")
	return db, nil
}
