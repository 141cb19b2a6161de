package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "booking"
dbname = "marketplace"

[kafka]
enabled = true
brokers = ["localhost:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "booking-lifecycle", cfg.Kafka.Topic)
	assert.True(t, cfg.Lifecycle.ClientCanCancelConfirmed)
	assert.Equal(t, "host=localhost port=5432 user=booking password= dbname=marketplace sslmode=disable", cfg.Database.DSN())
}

func TestLoad_PolicyOverride(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "booking"
dbname = "marketplace"

[lifecycle]
client_can_cancel_confirmed = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Lifecycle.ClientCanCancelConfirmed)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing database name",
			content: "[database]\nuser = \"booking\"\n",
		},
		{
			name:    "unknown log level",
			content: "[database]\nuser = \"u\"\ndbname = \"d\"\n[logs]\nlevel = \"verbose\"\n",
		},
		{
			name:    "kafka enabled without topic",
			content: "[database]\nuser = \"u\"\ndbname = \"d\"\n[kafka]\nenabled = true\nbrokers = [\"localhost:9092\"]\ntopic = \"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
