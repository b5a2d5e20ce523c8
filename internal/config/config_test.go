package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db/stick.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 1000, cfg.MaxCollectionSize)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STICKER_DB_PATH", "/tmp/album.db")
	t.Setenv("STICKER_LOG_FORMAT", "json")
	t.Setenv("STICKER_MAX_COLLECTION_SIZE", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/album.db", cfg.DBPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 250, cfg.MaxCollectionSize)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		t.Setenv("STICKER_LOG_FORMAT", "xml")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("size", func(t *testing.T) {
		t.Setenv("STICKER_MAX_COLLECTION_SIZE", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("STICKER_MAX_COLLECTION_SIZE", "many")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidateClampsWindow(t *testing.T) {
	cfg := Config{DBPath: "x.db", LogFormat: "console", MaxCollectionSize: 10, WindowWidth: 300, WindowHeight: 200}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(MinWindowWidth), cfg.WindowWidth)
	assert.Equal(t, float32(MinWindowHeight), cfg.WindowHeight)
}
