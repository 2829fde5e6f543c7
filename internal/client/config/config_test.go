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

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "member.db", c.DatabasePath)
	assert.Empty(t, c.MetricsAddr)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	setArgs(t)
	chdir(t, t.TempDir())

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    func(c *Config)
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://localhost:8080", "-t", "3", "-d", "/tmp/m.db", "-l", "debug", "-m", ":9100"},
			expected: func(c *Config) {
				c.BaseURL = "http://localhost:8080"
				c.RequestTimeout = 3 * time.Second
				c.DatabasePath = "/tmp/m.db"
				c.LogLevel = "debug"
				c.MetricsAddr = ":9100"
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "cfg.json", "-z", "1"},
			expected: func(c *Config) {},
		},
		{
			name:        "bad timeout",
			args:        []string{"-t", "ten"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)
			c := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(c) })
				return
			}

			require.NotPanics(t, func() { parseFlags(c) })
			want := defaults()
			tt.expected(want)
			assert.Empty(t, cmp.Diff(want, c))
		})
	}
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"base_url":        "http://127.0.0.1:8080",
		"request_timeout": "2s",
		"metrics_addr":    ":9100",
	})

	t.Run("loads set fields", func(t *testing.T) {
		setArgs(t, "-config", path)
		c := defaults()
		parseJson(c)

		want := defaults()
		want.BaseURL = "http://127.0.0.1:8080"
		want.RequestTimeout = 2 * time.Second
		want.MetricsAddr = ":9100"
		assert.Empty(t, cmp.Diff(want, c))
	})

	t.Run("no config flag leaves values", func(t *testing.T) {
		setArgs(t)
		c := defaults()
		parseJson(c)
		assert.Empty(t, cmp.Diff(defaults(), c))
	})

	t.Run("invalid json panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		setArgs(t, "-c", bad)
		require.Panics(t, func() { parseJson(defaults()) })
	})
}

func TestParseEnv(t *testing.T) {
	setArgs(t)
	chdir(t, t.TempDir())
	t.Setenv("MEMBER_BASE_URL", "http://env:1")
	t.Setenv("MEMBER_REQUEST_TIMEOUT", "4s")

	c := defaults()
	parseEnv(c)

	assert.Equal(t, "http://env:1", c.BaseURL)
	assert.Equal(t, 4*time.Second, c.RequestTimeout)
	assert.Equal(t, "member.db", c.DatabasePath)
}

func TestParseEnv_DotEnvInWorkingDir(t *testing.T) {
	setArgs(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MEMBER_DATABASE_PATH=/data/m.db\n"), 0o600))
	chdir(t, dir)
	t.Setenv("MEMBER_DATABASE_PATH", "")
	require.NoError(t, os.Unsetenv("MEMBER_DATABASE_PATH"))

	c := defaults()
	parseEnv(c)
	assert.Equal(t, "/data/m.db", c.DatabasePath)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"base_url": "http://json", "database_path": "json.db"})
	setArgs(t, "-c", path, "-a", "http://flag")
	chdir(t, t.TempDir())
	t.Setenv("MEMBER_BASE_URL", "http://env")
	t.Setenv("MEMBER_LOG_LEVEL", "debug")

	c := LoadConfig()

	assert.Equal(t, "http://flag", c.BaseURL)
	assert.Equal(t, "json.db", c.DatabasePath)
	assert.Equal(t, "debug", c.LogLevel)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
