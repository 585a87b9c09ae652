package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o644))
}

func TestLoad_ReadsFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "billing", "server:\n  http:\n    port: 9090\nexpiry:\n  pending_ttl: 48h\n")
	t.Setenv("CONFIG_PATH", dir)

	cfg, err := Load("billing", map[string]interface{}{
		"server.http.host": "0.0.0.0",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.GetInt("server.http.port"))
	assert.Equal(t, "0.0.0.0", cfg.GetString("server.http.host"))
	assert.Equal(t, 48*time.Hour, cfg.GetDuration("expiry.pending_ttl"))
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "billing", "payment:\n  method: paymaya\n")
	t.Setenv("CONFIG_PATH", dir)
	t.Setenv("BILLING_PAYMENT_METHOD", "gcash")

	cfg, err := Load("billing", nil)
	require.NoError(t, err)

	assert.Equal(t, "gcash", cfg.GetString("payment.method"))
}

func TestLoad_Unmarshal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "billing", "relay:\n  interval: 5s\n  batch_size: 25\n")
	t.Setenv("CONFIG_PATH", dir)

	cfg, err := Load("billing", nil)
	require.NoError(t, err)

	var out struct {
		Relay struct {
			Interval  time.Duration `mapstructure:"interval"`
			BatchSize int           `mapstructure:"batch_size"`
		} `mapstructure:"relay"`
	}
	require.NoError(t, cfg.Unmarshal(&out))
	assert.Equal(t, 5*time.Second, out.Relay.Interval)
	assert.Equal(t, 25, out.Relay.BatchSize)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())

	_, err := Load("billing", nil)
	assert.Error(t, err)
}

func TestLoad_EnvironmentDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "configs", "staging"), 0o755))
	writeConfig(t, filepath.Join(root, "configs", "staging"), "billing", "payment:\n  verifier: pattern\n")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("APP_ENV", "staging")

	cfg, err := Load("billing", nil)
	require.NoError(t, err)

	assert.Equal(t, "pattern", cfg.GetString("payment.verifier"))
	assert.Contains(t, cfg.File(), filepath.Join("configs", "staging", "billing.yaml"))
}
