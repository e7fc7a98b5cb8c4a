// Command migrate prepares the configured ledger backend: it creates the
// Spanner instance and database when running against the emulator and
// applies pending DDL, or creates and migrates the SQLite file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/light-bringer/ledger-service/internal/config"
	"github.com/light-bringer/ledger-service/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	backend := flag.String("backend", cfg.Backend, "Storage backend (spanner or sqlite)")
	dbPath := flag.String("database", cfg.SpannerDB, "Spanner database path (projects/P/instances/I/databases/D)")
	migrateDir := flag.String("migrations", "migrations/spanner", "Directory containing Spanner DDL files")
	sqlitePath := flag.String("sqlite-path", cfg.SQLitePath, "SQLite database file")
	flag.Parse()

	logger := cfg.NewLogger(os.Stderr)
	ctx := context.Background()

	switch *backend {
	case config.BackendSQLite:
		err = migrateSQLite(*sqlitePath, logger)
	case config.BackendSpanner:
		var target spannerTarget
		target, err = parseSpannerTarget(*dbPath)
		if err == nil {
			err = newSpannerMigrator(target, *migrateDir, logger).run(ctx)
		}
	default:
		err = fmt.Errorf("unknown backend %q", *backend)
	}
	if err != nil {
		logger.Error("migration failed", "backend", *backend, "error", err)
		os.Exit(1)
	}
	logger.Info("migrations complete", "backend", *backend)
}

func migrateSQLite(path string, logger *slog.Logger) error {
	logger.Info("applying sqlite migrations", "path", path)
	store, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	return store.Close()
}
