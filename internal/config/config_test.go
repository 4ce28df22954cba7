package config

import (
	"os"
	"path/filepath"
	"testing"

	"wasdash/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{"database": {"path": "wasdash.db"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "wasdash.db", cfg.Database.Path)
	assert.Equal(t, constants.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, constants.DefaultReadTimeoutSec, cfg.Server.ReadTimeoutSec)
	assert.Equal(t, constants.DefaultWriteTimeoutSec, cfg.Server.WriteTimeoutSec)
	assert.Equal(t, constants.DefaultIdleTimeoutSec, cfg.Server.IdleTimeoutSec)
	assert.Equal(t, int64(constants.DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
	assert.Equal(t, constants.DefaultCleanupIntervalHours, cfg.Server.CleanupIntervalHours)
	assert.Equal(t, constants.DefaultConversationGapHours, cfg.Analysis.ConversationGapHours)
	assert.Equal(t, constants.DefaultRetentionDays, cfg.RetentionDays)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"port": 9999, "maxUploadBytes": 1024},
		"database": {"path": "custom.db"},
		"analysis": {"conversationGapHours": 4, "stopWords": ["foo"]},
		"log_level": "debug",
		"retentionDays": 30
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 4, cfg.Analysis.ConversationGapHours)
	assert.Equal(t, []string{"foo"}, cfg.Analysis.StopWords)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.RetentionDays)
}

func TestLoadConfigMissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `{}`)

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrMissingDBPath)
}

func TestLoadConfigNegativeGapRejected(t *testing.T) {
	path := writeConfig(t, `{
		"database": {"path": "wasdash.db"},
		"analysis": {"conversationGapHours": -1}
	}`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfigTraversalPathRejected(t *testing.T) {
	_, err := LoadConfig("../../../etc/passwd")
	assert.Error(t, err)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `{"database": {"path": "wasdash.db"}, "server": {"port": 9000}}`)

	t.Setenv("WASDASH_DB_PATH", "/data/override.db")
	t.Setenv("WASDASH_PORT", "7070")
	t.Setenv("WASDASH_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/override.db", cfg.Database.Path)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigInvalidPortOverrideIgnored(t *testing.T) {
	path := writeConfig(t, `{"database": {"path": "wasdash.db"}, "server": {"port": 9000}}`)

	t.Setenv("WASDASH_PORT", "not-a-port")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}
