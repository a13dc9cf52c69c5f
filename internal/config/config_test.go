package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutWindow)
	assert.False(t, cfg.Redis.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("WELLNESS_SERVER_PORT", "9090")
	t.Setenv("WELLNESS_SERVER_READ_TIMEOUT", "3s")
	t.Setenv("WELLNESS_SERVER_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WELLNESS_DATABASE_DRIVER", "surrealdb")
	t.Setenv("WELLNESS_DATABASE_MAX_CONNS", "25")
	t.Setenv("WELLNESS_REDIS_ENABLED", "true")
	t.Setenv("WELLNESS_AUTH_LOCKOUT_WINDOW", "1h")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DriverSurrealDB, cfg.Database.Driver)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Auth.LockoutWindow)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: "7000"
  env: production
log:
  format: text
jwt:
  issuer: file-issuer
ratelimit:
  requests_per_second: 0
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("WELLNESS_SERVER_PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Server.Port, "env wins over file")
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "file-issuer", cfg.JWT.Issuer)
	assert.Equal(t, 0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 60, cfg.JWT.ExpirationMins, "unset keys keep defaults")
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "server.port", envKey("WELLNESS_SERVER_PORT"))
	assert.Equal(t, "server.allowed_origins", envKey("WELLNESS_SERVER_ALLOWED_ORIGINS"))
	assert.Equal(t, "auth.max_login_attempts", envKey("WELLNESS_AUTH_MAX_LOGIN_ATTEMPTS"))
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	t.Parallel()
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_SingleProblems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		mention string
	}{
		{"invalid env", func(c *Config) { c.Server.Env = "staging" }, "server.env"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server.port"},
		{"no origins", func(c *Config) { c.Server.AllowedOrigins = nil }, "server.allowed_origins"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"postgres without url", func(c *Config) { c.Database.URL = "" }, "database.url"},
		{"surreal without host", func(c *Config) {
			c.Database.Driver = DriverSurrealDB
			c.Database.Host = ""
		}, "database.host"},
		{"bad expiration", func(c *Config) { c.JWT.ExpirationMins = 0 }, "jwt.expiration_mins"},
		{"redis without addr", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.Addr = ""
		}, "redis.addr"},
		{"bcrypt cost too high", func(c *Config) { c.Auth.BcryptCost = 40 }, "auth.bcrypt_cost"},
		{"negative rate", func(c *Config) { c.RateLimit.RequestsPerSecond = -1 }, "ratelimit.requests_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestConfig_Validate_ProductionRequiresJWTKeys(t *testing.T) {
	t.Parallel()
	cfg := validBaseConfig()
	cfg.Server.Env = "production"
	cfg.JWT.PrivateKeyPath = ""
	cfg.JWT.PublicKeyPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.private_key_path")
	assert.Contains(t, err.Error(), "jwt.public_key_path")
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	t.Parallel()
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	for _, field := range []string{"server.port", "server.env", "log.level", "database.driver", "jwt.expiration_mins"} {
		if !strings.Contains(errStr, field) {
			t.Errorf("expected error to mention %s, got: %v", field, err)
		}
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	t.Parallel()
	cfg := &Config{Server: ServerConfig{Env: "development"}}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Server.Env = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

// validBaseConfig returns a minimal valid configuration for testing
func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Env:             "development",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000"},
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Database: DatabaseConfig{
			Driver:    DriverPostgres,
			URL:       "postgres://localhost/wellnessflow",
			Host:      "localhost",
			Port:      "8000",
			Namespace: "wellnessflow",
			Database:  "main",
		},
		JWT: JWTConfig{
			PrivateKeyPath: "./keys/private.pem",
			PublicKeyPath:  "./keys/public.pem",
			ExpirationMins: 15,
			Issuer:         "wellnessflow",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Auth:  AuthConfig{BcryptCost: 12, MaxLoginAttempts: 5, LockoutWindow: 15 * time.Minute},
	}
}
