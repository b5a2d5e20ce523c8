package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openRawDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrationsRecordsOnce(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()
	migrations := fstest.MapFS{
		"001_items.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
	}

	require.NoError(t, applyMigrations(ctx, db, migrations))
	require.NoError(t, applyMigrations(ctx, db, migrations))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count))
	assert.Zero(t, count)
}

func TestApplyMigrationsDoesNotRecordFailure(t *testing.T) {
	db := openRawDB(t)
	migrations := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("CREATE TABLE (")},
	}

	require.Error(t, applyMigrations(context.Background(), db, migrations))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Zero(t, count)
}

func TestExtractUpMigration(t *testing.T) {
	assert.Equal(t, "SELECT 1;", extractUpMigration("SELECT 1;"))
	assert.Equal(t, "\nA;\n", extractUpMigration("-- +migrate Up\nA;\n-- +migrate Down\nB;"))
	assert.Equal(t, "\nA;", extractUpMigration("-- +migrate Up\nA;"))
}
