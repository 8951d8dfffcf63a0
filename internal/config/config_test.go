package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ticket-triage", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "production", cfg.Freshservice.Mode)
	assert.Equal(t, 100, cfg.Freshservice.PerPage)
	assert.Equal(t, 2, cfg.Freshservice.MaxRetries)
	assert.Equal(t, "score_map.csv", cfg.Rules.File)
	assert.Equal(t, "static/assets/config", cfg.Rules.Dir)
	assert.False(t, cfg.Rules.LegacyShape)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("FRESHSERVICE_MODE", "staging")
	t.Setenv("FRESHSERVICE_SUBDOMAIN", "support")
	t.Setenv("FRESHSERVICE_STAGING_SUBDOMAIN", "support-sandbox")
	t.Setenv("RULES_LEGACY_SHAPE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.Rules.LegacyShape)
	assert.Equal(t, "support-sandbox", cfg.Freshservice.ActiveSubdomain())
}

func TestActiveSubdomain_FallsBackToProduction(t *testing.T) {
	f := FreshserviceConfig{Mode: "staging", Subdomain: "support"}
	assert.Equal(t, "support", f.ActiveSubdomain(), "missing staging subdomain falls back")

	f = FreshserviceConfig{Mode: "production", Subdomain: "support", StagingSubdomain: "support-sandbox"}
	assert.Equal(t, "support", f.ActiveSubdomain())
}
