package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ServiceName+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "service:\n  environment: test\n"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Service.Environment)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "paymaya", cfg.Payment.Method)
	assert.Equal(t, "https://paymaya.me/elchannah", cfg.Payment.CheckoutURL)
	assert.Equal(t, VerifierTrust, cfg.Payment.Verifier)
	assert.False(t, cfg.Expiry.Enabled)
	assert.Equal(t, 72*time.Hour, cfg.Expiry.PendingTTL)
	assert.Equal(t, 5*time.Second, cfg.Relay.Interval)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTP.Address())
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "payment:\n  method: paymaya\n"))
	t.Setenv("BILLING_PAYMENT_METHOD", "gcash")
	t.Setenv("BILLING_EXPIRY_PENDING_TTL", "1h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gcash", cfg.Payment.Method)
	assert.Equal(t, time.Hour, cfg.Expiry.PendingTTL)
}

func TestLoadConfig_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"unknown verifier", "payment:\n  verifier: psychic\n"},
		{"pattern without expression", "payment:\n  verifier: pattern\n"},
		{"stripe without key", "payment:\n  verifier: stripe\n"},
		{"zero ttl with expiry enabled", "expiry:\n  enabled: true\n  pending_ttl: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", writeConfig(t, tt.content))

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ZeroTTLAllowedWhenExpiryDisabled(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "expiry:\n  enabled: false\n  pending_ttl: 0s\n"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Expiry.Enabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "juansite", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=juansite sslmode=disable", db.DSN())
}
