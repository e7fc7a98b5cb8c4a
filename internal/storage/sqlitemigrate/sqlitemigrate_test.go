package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every pooled connection would otherwise see its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}

func TestApplyMigrations_RecordsApplied(t *testing.T) {
	ctx := context.Background()
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;")},
	}

	require.NoError(t, ApplyMigrations(ctx, db, migrations, ""))

	assert.Equal(t, int64(1), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, int64(1), count(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'items'"))
}

func TestApplyMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte("CREATE TABLE items(id TEXT PRIMARY KEY);")},
		"002_more.sql":   &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE more_items(id TEXT PRIMARY KEY);")},
	}

	require.NoError(t, ApplyMigrations(ctx, db, migrations, ""))
	require.NoError(t, ApplyMigrations(ctx, db, migrations, ""))

	assert.Equal(t, int64(2), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyMigrations_FailedMigrationIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	db := openInMemoryDB(t)
	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT TABLE things(id INT);")},
	}

	assert.Error(t, ApplyMigrations(ctx, db, bad, ""))
	assert.Equal(t, int64(0), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))

	good := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE things(id INTEGER PRIMARY KEY);")},
	}
	require.NoError(t, ApplyMigrations(ctx, db, good, ""))
	assert.Equal(t, int64(1), count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyMigrations_Root(t *testing.T) {
	ctx := context.Background()
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"ledger/001_events.sql": &fstest.MapFile{Data: []byte("CREATE TABLE event_rows(id TEXT PRIMARY KEY);")},
	}

	require.NoError(t, ApplyMigrations(ctx, db, migrations, "ledger"))

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM schema_migrations").Scan(&name))
	assert.Equal(t, "ledger/001_events.sql", name)
}

func TestApplyMigrations_RequiresDB(t *testing.T) {
	assert.Error(t, ApplyMigrations(context.Background(), nil, fstest.MapFS{}, ""))
}

func TestExtractUp(t *testing.T) {
	assert.Equal(t, "\nA;\n", ExtractUp("-- +migrate Up\nA;\n-- +migrate Down\nB;"))
	assert.Equal(t, "\nA;", ExtractUp("-- +migrate Up\nA;"))
	assert.Equal(t, "A;", ExtractUp("A;"))
}
