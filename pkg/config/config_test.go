package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/config"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/textfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func TestRead_Defaults(t *testing.T) {
	cfg, err := config.Read(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Empty(t, cfg.Server.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.Server.AdminTokenTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "agelock:rules", cfg.Rules.RedisKey)
	assert.Equal(t, policy.Children, cfg.Policy.Profile())
	assert.True(t, cfg.Policy.SafeSearch)
	assert.True(t, cfg.Policy.ContentFiltering)
	assert.True(t, cfg.Policy.GamingEnabled)
	assert.False(t, cfg.Policy.SocialMediaEnabled)
	assert.True(t, cfg.Policy.RestrictedPlatform.Enabled)

	overrides, err := cfg.Policy.ThresholdOverrides()
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestRead_File(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 8181
redis:
  enabled: true
  host: redis.internal
policy:
  default_profile: teenagers
  strict_mode: true
  blocked_categories:
    adult: false
  thresholds:
    children:
      violence: 0.5
  restricted_platform:
    kids_redirect: https://kids.example.com
`)
	cfg, err := config.Read(dir)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, policy.Teenagers, cfg.Policy.Profile())
	assert.True(t, cfg.Policy.StrictMode)
	assert.Equal(t, map[string]bool{"adult": false}, cfg.Policy.BlockedCategories)
	assert.Equal(t, "https://kids.example.com", cfg.Policy.RestrictedPlatform.KidsRedirect)
	assert.True(t, cfg.Policy.RestrictedPlatform.Enabled, "unset keys keep their defaults")

	overrides, err := cfg.Policy.ThresholdOverrides()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, overrides.Lookup(policy.Children, "violence"), 1e-9)
}

func TestRead_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 8181\n")
	t.Setenv("SERVER_PORT", "8282")
	t.Setenv("POLICY_STRICT_MODE", "true")
	t.Setenv("SERVER_SECRET_KEY", "s3cret")

	cfg, err := config.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, 8282, cfg.Server.Port)
	assert.True(t, cfg.Policy.StrictMode)
	assert.Equal(t, "s3cret", cfg.Server.SecretKey)
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "threshold out of range",
			content: "policy:\n  thresholds:\n    children:\n      violence: 1.5\n",
			target:  textfilter.ErrInvalidThreshold,
		},
		{
			name:    "port out of range",
			content: "server:\n  port: 70000\n",
		},
		{
			name:    "metrics port clash",
			content: "server:\n  port: 9000\n  metrics_port: 9000\n",
		},
		{
			name:    "negative admin token ttl",
			content: "server:\n  admin_token_ttl: -1h\n",
		},
		{
			name:    "malformed yaml",
			content: "server: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Read(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestLoad_SetsGlobalConfig(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 8383\n")
	require.NoError(t, config.Load(dir))
	assert.Equal(t, 8383, config.GetConfig().Server.Port)
}

func TestPolicyConfig_UnknownProfile(t *testing.T) {
	p := config.PolicyConfig{DefaultProfile: "toddlers"}
	assert.Equal(t, policy.Children, p.Profile())
}
