package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = args
	t.Cleanup(func() { os.Args = orig })
}

func withDotenv(t *testing.T, path string) {
	t.Helper()
	orig := dotenvFile
	dotenvFile = path
	t.Cleanup(func() { dotenvFile = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Contains(t, c.DatabaseDSN, "bijligrid")
	assert.Equal(t, 5*time.Second, c.HealthProbeInterval)
	assert.Equal(t, "info", c.LogLevel)
}

func TestParseEnv(t *testing.T) {
	withDotenv(t, filepath.Join(t.TempDir(), "missing.env"))

	t.Run("bare port", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("DATABASE_URL", "postgres://u:p@db/x")

		var c Config
		c.LoadDefaults()
		parseEnv(&c)

		assert.Equal(t, ":8080", c.HTTPAddr)
		assert.Equal(t, "postgres://u:p@db/x", c.DatabaseDSN)
	})

	t.Run("host and port", func(t *testing.T) {
		t.Setenv("PORT", "127.0.0.1:7000")
		t.Setenv("DATABASE_URL", "")

		var c Config
		c.LoadDefaults()
		parseEnv(&c)

		assert.Equal(t, "127.0.0.1:7000", c.HTTPAddr)
		assert.Contains(t, c.DatabaseDSN, "localhost")
	})
}

func TestParseEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://from-dotenv/db\n"), 0o600))
	withDotenv(t, path)

	t.Setenv("PORT", "")
	// godotenv never overrides variables that are already set, so make
	// sure DATABASE_URL is absent and restored afterwards.
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "postgres://from-dotenv/db", c.DatabaseDSN)
	assert.Equal(t, ":5000", c.HTTPAddr)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	b, err := json.Marshal(map[string]any{
		"http_addr":             ":9000",
		"grpc_addr":             ":9001",
		"health_probe_interval": "30s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	withArgs(t, "server", "-c", path)

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":9000", c.HTTPAddr)
	assert.Equal(t, ":9001", c.GRPCAddr)
	assert.Equal(t, 30*time.Second, c.HealthProbeInterval)
	assert.Equal(t, "info", c.LogLevel)

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
		withArgs(t, "server", "-config", bad)
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"server", "-a", ":8081", "-g", ":9091", "-d", "db", "-i", "2", "-l", "debug"},
			expected: &Config{
				HTTPAddr:            ":8081",
				GRPCAddr:            ":9091",
				DatabaseDSN:         "db",
				HealthProbeInterval: 2 * time.Second,
				LogLevel:            "debug",
			},
		},
		{
			name:        "bad int",
			args:        []string{"server", "-i", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			c := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(c) })
				return
			}
			require.NotPanics(t, func() { parseFlags(c) })
			assert.Empty(t, cmp.Diff(tt.expected, c))
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	withDotenv(t, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	withArgs(t, "server", "-d", "postgres://flag/db")

	c := LoadConfig()

	assert.Equal(t, ":7000", c.HTTPAddr)
	assert.Equal(t, "postgres://flag/db", c.DatabaseDSN)
}
