package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearPlatformEnv blanks every variable LoadConfig may pick up from the host.
func clearPlatformEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SUPABASE_URL",
		"SUPABASE_SERVICE_ROLE_KEY",
		"AUTOCENTER_PLATFORM__URL",
		"AUTOCENTER_PLATFORM__SERVICE_KEY",
		"AUTOCENTER_STORAGE__DRIVER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("AUTOCENTER_PLATFORM__URL", "https://project.example.co")
	t.Setenv("AUTOCENTER_PLATFORM__SERVICE_KEY", "service-role-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://project.example.co", cfg.Platform.URL)
	assert.Equal(t, "service-role-key", cfg.Platform.ServiceKey)
	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, DriverPlatform, cfg.Storage.Driver)
	assert.False(t, cfg.UsesPostgres())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "autocenter-functions", cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfig_PlatformAliases(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("SUPABASE_URL", "https://alias.example.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "alias-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://alias.example.co", cfg.Platform.URL)
	assert.Equal(t, "alias-key", cfg.Platform.ServiceKey)
}

func TestLoadConfig_PrefixedOverridesAlias(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("SUPABASE_URL", "https://alias.example.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "alias-key")
	t.Setenv("AUTOCENTER_PLATFORM__URL", "https://prefixed.example.co")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://prefixed.example.co", cfg.Platform.URL)
	assert.Equal(t, "alias-key", cfg.Platform.ServiceKey)
}

func TestLoadConfig_MissingPlatformFailsFast(t *testing.T) {
	tests := []struct {
		name string
		url  string
		key  string
	}{
		{"missing url", "", "service-role-key"},
		{"missing key", "https://project.example.co", ""},
		{"both missing", "", ""},
		{"url not absolute", "project.example.co", "service-role-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearPlatformEnv(t)
			t.Setenv("AUTOCENTER_PLATFORM__URL", tt.url)
			t.Setenv("AUTOCENTER_PLATFORM__SERVICE_KEY", tt.key)

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfig_PostgresNeedsDatabase(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("AUTOCENTER_PLATFORM__URL", "https://project.example.co")
	t.Setenv("AUTOCENTER_PLATFORM__SERVICE_KEY", "service-role-key")
	t.Setenv("AUTOCENTER_STORAGE__DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires the database block")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("AUTOCENTER_PLATFORM__URL", "https://project.example.co")
	t.Setenv("AUTOCENTER_PLATFORM__SERVICE_KEY", "service-role-key")
	t.Setenv("AUTOCENTER_STORAGE__DRIVER", "mysql")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestObservabilityGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestHealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("platform"))
	assert.False(t, cfg.HealthCheckEnabled("redis"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("platform"))
}
