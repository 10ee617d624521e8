package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))

	entries, err := embedded.ReadDir(embeddedDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}

func TestInitMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_storefront.sql"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	content := string(data)

	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_id ON carts (user_id)",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS order_items",
		"DROP TABLE IF EXISTS users",
	} {
		assert.Contains(t, content, sub)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "  Add Orders Index! ", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260301093000_add_orders_index.sql"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "-- +goose Up"))
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "add orders index", now)
	assert.ErrorContains(t, err, "already exists")

	_, err = CreateSQLMigration(dir, "!!!", now)
	assert.ErrorContains(t, err, "empty sanitized filename")
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	t.Run("bad name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
		assert.ErrorContains(t, ValidateDir(dir), "invalid migration filename")
	})

	t.Run("duplicate version", func(t *testing.T) {
		dir := t.TempDir()
		body := []byte("-- +goose Up\n-- +goose Down\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_a.sql"), body, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_b.sql"), body, 0o644))
		assert.ErrorContains(t, ValidateDir(dir), "duplicate migration version")
	})

	t.Run("missing down", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_a.sql"), []byte("-- +goose Up\n"), 0o644))
		assert.ErrorContains(t, ValidateDir(dir), "-- +goose Down")
	})
}
