package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GO_ENV", "PORT", "DATABASE_URL", "STORE_DRIVER", "STORE_TIMEOUT",
		"JWT_SECRET", "JWT_EXPIRY", "ORGANIZER_SECRET",
		"MIN_PASSWORD_LEN_REGISTER", "MIN_PASSWORD_LEN_SELF_SERVICE",
		"ENFORCE_VOTING_WINDOW", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "TALLY_CACHE_TTL",
		"EMAIL_PROVIDER", "EMAIL_FROM_ADDRESS", "EMAIL_FROM_NAME",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
	} {
		t.Setenv(k, "")
	}
	// production skips the .env lookup
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 6, cfg.MinPasswordLenRegister)
	assert.Equal(t, 8, cfg.MinPasswordLenSelfService)
	assert.True(t, cfg.EnforceVotingWindow)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 10*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Empty(t, cfg.OrganizerSecret)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("ORGANIZER_SECRET", "s3cret")
	t.Setenv("MIN_PASSWORD_LEN_SELF_SERVICE", "12")
	t.Setenv("ENFORCE_VOTING_WINDOW", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("EMAIL_PROVIDER", "SES")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "s3cret", cfg.OrganizerSecret)
	assert.Equal(t, 12, cfg.MinPasswordLenSelfService)
	assert.False(t, cfg.EnforceVotingWindow)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, RedisConfig{Addr: "localhost:6379", DB: 2, TTL: 10 * time.Second}, cfg.Redis)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "eu-west-1", cfg.Email.AWSRegion)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"bad duration", "STORE_TIMEOUT", "soon", "STORE_TIMEOUT"},
		{"zero timeout", "STORE_TIMEOUT", "0s", "must be positive"},
		{"bad bool", "ENFORCE_VOTING_WINDOW", "maybe", "invalid boolean"},
		{"bad int", "RATE_LIMIT_BURST", "ten", "invalid integer"},
		{"bad float", "RATE_LIMIT_RPS", "fast", "invalid number"},
		{"unknown driver", "STORE_DRIVER", "mongo", "must be postgres or memory"},
		{"non-positive password length", "MIN_PASSWORD_LEN_REGISTER", "0", "must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_JWTSecretRequiredInProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "production", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "event_id", "ev-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "ev-1", line["event_id"])
	assert.Equal(t, "electionhub", line["service"])

	buf.Reset()
	NewLoggerTo(&buf, "development", "").Debug("nope")
	assert.Empty(t, buf.String())
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
