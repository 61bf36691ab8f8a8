package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8083", cfg.Addr())
	assert.Equal(t, "http://localhost:8081", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.ListMinDelay)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "staffdesk.db", cfg.DBPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STAFFDESK_BACKEND_URL", "http://hr.internal:9000/")
	t.Setenv("STAFFDESK_LISTEN_PORT", "9999")
	t.Setenv("STAFFDESK_LIST_MIN_DELAY", "0s")
	t.Setenv("STAFFDESK_LOCALE", "zh")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://hr.internal:9000", cfg.BackendURL)
	assert.Equal(t, 9999, cfg.ListenPort)
	assert.Equal(t, time.Duration(0), cfg.ListMinDelay)
	assert.Equal(t, "zh", cfg.Locale)
}
