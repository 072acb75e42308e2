package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	for _, k := range []string{"PORT", "TOKEN_TTL", "CLIENT_ORIGIN", "STORAGE_DRIVER", "SEND_BUFFER", "HANDLER_TIMEOUT", "S3_BUCKET"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "6001", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "mongo", cfg.StorageDriver)
	assert.Equal(t, 64, cfg.SendBuffer)
	assert.Equal(t, 10*time.Second, cfg.HandlerTimeout)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CLIENT_ORIGIN", "http://a.test, http://b.test")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("SEND_BUFFER", "8")
	t.Setenv("S3_BUCKET", "attachments")
	t.Setenv("S3_ACCESS_KEY_ID", "id")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 8, cfg.SendBuffer)
	assert.True(t, cfg.S3.Enabled())
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("HANDLER_TIMEOUT", "-5s")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.HandlerTimeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "development with default secret", cfg: Config{Env: "development", JWTSecret: DevJWTSecret}},
		{name: "production with default secret", cfg: Config{Env: "production", JWTSecret: DevJWTSecret}, wantErr: true},
		{name: "production with empty secret", cfg: Config{Env: "production"}, wantErr: true},
		{name: "production with own secret", cfg: Config{Env: "production", JWTSecret: "a-real-secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_DefaultSecretIsFlagged(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()

	assert.True(t, cfg.UsesDevSecret())
}
