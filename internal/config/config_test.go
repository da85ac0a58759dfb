package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 60*time.Second, cfg.ModuleTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("PAGESPEED_API_KEY", "ps-key")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DEBUG", "true")
	t.Setenv("MODULE_TIMEOUT", "15s")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "ps-key", cfg.PageSpeedAPIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 15*time.Second, cfg.ModuleTimeout)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("MODULE_TIMEOUT", "not-a-duration")
	assert.Equal(t, 60*time.Second, Load().ModuleTimeout)
}

func TestConfiguredAPIs(t *testing.T) {
	cfg := Config{PageSpeedAPIKey: "x", BingAPIKey: ""}
	apis := cfg.ConfiguredAPIs()

	assert.True(t, apis["pagespeed"])
	assert.False(t, apis["gemini"])
	assert.False(t, apis["bing"])
}
