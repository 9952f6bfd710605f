package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/sentinel"
)

const testKey = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8="

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("WORKSPACE_ID", "abc123")
	t.Setenv("SHARED_KEY", testKey)
}

func TestLoadDefaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.WorkspaceID)
	assert.Equal(t, sentinel.DefaultLogType, cfg.LogType)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DBURL)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("LOG_TYPE", "Custom_Detections")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("API_KEYS", "mailgw:k1, edge:k2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Custom_Detections", cfg.Sentinel().LogType)
	assert.Equal(t, 5*time.Second, cfg.Sentinel().Timeout)
	assert.Equal(t, map[string]string{"k1": "mailgw", "k2": "edge"}, cfg.APIKeys)
}

func TestLoadFailsFastOnCredentials(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("WORKSPACE_ID", "")
		t.Setenv("SHARED_KEY", "")
		_, err := Load()
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel.ErrMissingWorkspaceID)
		assert.ErrorIs(t, err, sentinel.ErrMissingSharedKey)
	})
	t.Run("malformed key", func(t *testing.T) {
		t.Setenv("WORKSPACE_ID", "abc123")
		t.Setenv("SHARED_KEY", "%%%")
		_, err := Load()
		assert.ErrorIs(t, err, sentinel.ErrInvalidSharedKey)
	})
}

func TestLoadParseError(t *testing.T) {
	setCredentials(t)
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestParseAPIKeysRejectsMalformedPairs(t *testing.T) {
	for _, raw := range []string{"nocolon", ":key", "source:"} {
		_, err := ParseAPIKeys(raw)
		assert.Error(t, err, raw)
	}
}
