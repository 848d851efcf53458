package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://informes.educacionweb.es", cfg.API.BaseURL)
	assert.Equal(t, 50, cfg.API.Timeout)
	assert.Equal(t, 5, cfg.Game.Attempts)
	assert.Equal(t, 2500, cfg.Game.LoadStepMillis)
	assert.Equal(t, 5000, cfg.Game.HighlightMillis)
	assert.False(t, cfg.Tts.Enabled)
	assert.Equal(t, ":3000", cfg.Web.Addr)
	assert.Equal(t, "./static", cfg.Web.Static)
}
