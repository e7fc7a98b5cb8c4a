// Package sqlite provides a SQLite-backed implementation of the ledger
// repositories for local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/light-bringer/ledger-service/internal/storage/sqlite/migrations"
	"github.com/light-bringer/ledger-service/internal/storage/sqlitemigrate"
)

// Store owns the SQLite connection shared by the ledger repositories.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := strings.TrimSpace(path)
	dsn := cleanPath + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Events returns the event log repository.
func (s *Store) Events() *EventStore { return &EventStore{store: s} }

// Transactions returns the snapshot repository.
func (s *Store) Transactions() *TransactionStore { return &TransactionStore{store: s} }

// MetadataKeys returns the metadata key catalogue.
func (s *Store) MetadataKeys() *MetadataKeyStore { return &MetadataKeyStore{store: s} }

// TransactionMetadata returns the per-transaction metadata repository.
func (s *Store) TransactionMetadata() *TransactionMetadataStore {
	return &TransactionMetadataStore{store: s}
}

// Reports returns the aggregate report repository.
func (s *Store) Reports() *ReportStore { return &ReportStore{store: s} }

// Timestamps are stored as unix nanoseconds so event ordering survives a
// round trip at full precision.
func toNanos(value time.Time) int64 {
	return value.UTC().UnixNano()
}

func fromNanos(value int64) time.Time {
	return time.Unix(0, value).UTC()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// statementArgs binds builder parameters by name. SQLite accepts the same
// @name placeholders the builder emits.
func statementArgs(stmt spanner.Statement) []any {
	args := make([]any, 0, len(stmt.Params))
	for name, value := range stmt.Params {
		args = append(args, sql.Named(name, value))
	}
	return args
}

func isConstraintViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return true
	default:
		return false
	}
}
