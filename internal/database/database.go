package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"github.com/jaminalder/codex-battleship/internal/config"
	"github.com/jaminalder/codex-battleship/internal/constants"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// New opens the database named by cfg.DBPath.
func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return Open(cfg.DBPath, logger)
}

// pragmas are applied by the driver on every pooled connection.
var pragmas = []struct{ key, value string }{
	{"_journal_mode", "WAL"},
	{"_synchronous", "NORMAL"},
	{"_busy_timeout", "5000"},
	{"_foreign_keys", "on"},
}

// DSN builds the go-sqlite3 connection string for path.
func DSN(path string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Set(p.key, p.value)
	}
	return "file:" + path + "?" + q.Encode()
}

// Open connects to the sqlite file at path and applies migrations.
func Open(path string, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("path", path).Msg("opening board database")

	db, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	if err := migrate(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}
	logger.Info().Int64("schema_version", version).Msg("board database ready")
	return nil
}
