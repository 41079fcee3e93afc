package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/paywall/internal/database"
)

// RunMigrations migrates the article content store. Migrations are read from
// <dir>/postgresql or <dir>/mysql. steps of zero applies everything pending, a positive
// value applies that many and a negative value rolls that many back.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString, dir string, steps int) error {
	if err := database.ValidateDriver(dbDriver); err != nil {
		return err
	}
	if dir == "" {
		dir = "migrations"
	}

	logger.Info("running database migrations",
		slog.String("driver", dbDriver),
		slog.String("dir", dir),
		slog.Int("steps", steps),
	)

	m, err := migrate.New(migrationSourceURL(dbDriver, dir), migrationDatabaseURL(dbDriver, dbConnectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("migrations completed, schema is empty")
	case err != nil:
		return fmt.Errorf("failed to read migration version: %w", err)
	default:
		logger.Info("migrations completed", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	return nil
}

// migrationSourceURL returns the file source for the driver's migration directory.
func migrationSourceURL(dbDriver, dir string) string {
	sub := "postgresql"
	if dbDriver == database.DriverMySQL {
		sub = "mysql"
	}
	return "file://" + filepath.ToSlash(filepath.Join(dir, sub))
}

// migrationDatabaseURL adds the scheme golang-migrate expects to a go-sql-driver/mysql
// DSN. Postgres connection URLs are used unchanged.
func migrationDatabaseURL(dbDriver, dsn string) string {
	if dbDriver == database.DriverMySQL && !strings.HasPrefix(dsn, "mysql://") {
		return "mysql://" + dsn
	}
	return dsn
}
