package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"sticker-manager/internal/models"
	"sticker-manager/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--db", dbPath, "--log-level", "error"))

	err := cmd.Execute()
	return out.String(), err
}

func TestCollectionsCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stick.db")

	out, err := execute(t, dbPath, "collections", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no collections")

	out, err = execute(t, dbPath, "collections", "add", "Copa America", "--size", "3", "--description", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, `created collection 1 "Copa America" with 3 stickers`)

	out, err = execute(t, dbPath, "collections", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1\tCopa America\t0/3 collected\t0 duplicates")

	_, err = execute(t, dbPath, "collections", "add", "  ")
	assert.ErrorIs(t, err, models.ErrEmptyCollectionName)

	out, err = execute(t, dbPath, "collections", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted collection 1")

	_, err = execute(t, dbPath, "collections", "delete", "1")
	assert.ErrorIs(t, err, models.ErrCollectionNotFound)

	_, err = execute(t, dbPath, "collections", "delete", "abc")
	assert.Error(t, err)
}

func TestCardsCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stick.db")

	_, err := execute(t, dbPath, "collections", "add", "Euro", "--size", "3")
	require.NoError(t, err)

	out, err := execute(t, dbPath, "cards", "collect", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "[x] 2\n", out)

	out, err = execute(t, dbPath, "cards", "dup", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "[x] 2 (1 duplicates)\n", out)

	_, err = execute(t, dbPath, "cards", "dup", "1", "3", "--remove")
	assert.ErrorIs(t, err, models.ErrNoDuplicates)

	out, err = execute(t, dbPath, "cards", "add", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "added sticker 4 to collection 1")

	_, err = execute(t, dbPath, "cards", "add", "1", "2")
	assert.ErrorIs(t, err, models.ErrDuplicateCardNumber)

	_, err = execute(t, dbPath, "cards", "collect", "1", "two")
	assert.ErrorIs(t, err, models.ErrInvalidCardNumber)

	out, err = execute(t, dbPath, "cards", "list", "1", "--missing")
	require.NoError(t, err)
	assert.Equal(t, "[ ] 1\n[ ] 3\n[ ] 4\n", out)

	out, err = execute(t, dbPath, "cards", "list", "1", "--collected")
	require.NoError(t, err)
	assert.Equal(t, "[x] 2 (1 duplicates)\n", out)

	out, err = execute(t, dbPath, "cards", "collect", "1", "2", "--undo")
	require.NoError(t, err)
	assert.Equal(t, "[ ] 2 (1 duplicates)\n", out)

	_, err = execute(t, dbPath, "cards", "list", "1", "--collected", "--missing")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "stick.db")

	_, err := execute(t, dbPath, "collections", "add", "Mundial", "--size", "2")
	require.NoError(t, err)
	_, err = execute(t, dbPath, "cards", "collect", "1", "1")
	require.NoError(t, err)

	exportPath := filepath.Join(dir, "album.yaml")
	_, err = execute(t, dbPath, "export", "--out", exportPath)
	require.NoError(t, err)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)

	var doc services.AlbumExport
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Collections, 1)
	assert.Equal(t, "Mundial", doc.Collections[0].Name)
	assert.Equal(t, 1, doc.Collections[0].Collected)
	assert.Equal(t, []int{2}, doc.Collections[0].Missing)

	out, err := execute(t, dbPath, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Mundial")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("STICKER_DB_PATH", filepath.Join(t.TempDir(), "env.db"))
	t.Setenv("STICKER_LOG_LEVEL", "debug")

	cmd := newRootCmd()
	override := filepath.Join(t.TempDir(), "flag.db")
	cmd.SetArgs([]string{"collections", "list", "--db", override, "--log-level", "warn"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(override)
	assert.NoError(t, err)
}

func TestInvalidLogLevelRejected(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"collections", "list", "--db", filepath.Join(t.TempDir(), "stick.db"), "--log-level", "loud"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	assert.Error(t, cmd.Execute())
}
