// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so the process fails fast on bad or missing config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values (platform URL and service key above all).
//   - Provide sane defaults for optional config blocks.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Keys are read with the AUTOCENTER_ prefix. A double underscore separates
	nesting levels, single underscores stay inside a key name:

		AUTOCENTER_PLATFORM__SERVICE_KEY -> platform.service_key -> Config.Platform.ServiceKey
		AUTOCENTER_SERVER__READ_TIMEOUT  -> server.read_timeout  -> Config.Server.ReadTimeout

	The platform's conventional SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are
	accepted as aliases. Prefixed variables win when both are set.
*/

const (
	envPrefix      = "AUTOCENTER_"
	envNesting     = "__"
	keyDelimiter   = "."
	platformPrefix = "SUPABASE_"
)

// Storage drivers.
const (
	DriverPlatform = "platform"
	DriverPostgres = "postgres"
)

var platformAliases = map[string]string{
	"SUPABASE_URL":              "platform.url",
	"SUPABASE_SERVICE_ROLE_KEY": "platform.service_key",
}

// Config is the root configuration object for the application.
//
// Database and Observability are pointers because they are optional.
// Database must be present when Storage.Driver is "postgres".
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Platform      PlatformConfig       `koanf:"platform" validate:"required"`
	Storage       StorageConfig        `koanf:"storage"`
	Database      *DatabaseConfig      `koanf:"database"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"required"`
	WriteTimeout int    `koanf:"write_timeout" validate:"required"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"required"`
}

// PlatformConfig points at the managed backend platform.
//
// ServiceKey is the elevated (service-role) credential. It bypasses row level
// restrictions and the platform's read path cache, so it must never reach a
// client.
type PlatformConfig struct {
	URL        string `koanf:"url" validate:"required,url"`
	ServiceKey string `koanf:"service_key" validate:"required"`

	// RequestTimeout bounds each platform call. Zero keeps the transport default.
	RequestTimeout int `koanf:"request_timeout" validate:"min=0"`
}

// StorageConfig selects where invoices and profiles are read and written.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"omitempty,oneof=platform postgres"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// UsesPostgres reports whether invoices and profiles go straight to Postgres.
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == DriverPostgres
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
//
// A missing platform URL or service key is an error: the caller is expected
// to stop the process instead of talking to an empty URL.
func LoadConfig() (*Config, error) {
	k := koanf.New(keyDelimiter)

	// Aliases first so prefixed variables override them.
	err := k.Load(env.ProviderWithValue(platformPrefix, keyDelimiter, func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return platformAliases[key], value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load platform env variables: %w", err)
	}

	// Blank variables count as unset so they never shadow an alias.
	err = k.Load(env.ProviderWithValue(envPrefix, keyDelimiter, func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		return strings.ReplaceAll(key, envNesting, keyDelimiter), value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// applyDefaults fills values that are optional in the environment.
func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverPlatform
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	} else {
		c.Observability.fillDefaults()
	}

	// Service name and environment always follow the primary config.
	c.Observability.ServiceName = "autocenter-functions"
	c.Observability.Environment = c.Primary.Env
}

// Validate runs the struct tag validation followed by cross-field rules.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.UsesPostgres() && c.Database == nil {
		return fmt.Errorf("config validation failed: storage driver %q requires the database block", DriverPostgres)
	}

	if c.Observability != nil {
		if err := c.Observability.Validate(); err != nil {
			return fmt.Errorf("invalid observability config: %w", err)
		}
	}

	return nil
}
