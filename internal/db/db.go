package db

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lojf/festival/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Open connects to the SQLite file at path and brings the schema up to date.
func Open(path string, log zerolog.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path+dsnParams), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Info().Str("path", path).Msg("database ready (sqlite)")
	return conn, nil
}

// New is the fx constructor.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	return Open(cfg.DBPath, log)
}

func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
