package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "leetdl/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL to be %s, got %s", DefaultBaseURL, config.BaseURL)
	}

	if config.TimeoutSeconds != 30 {
		t.Errorf("Expected default timeout to be 30, got %d", config.TimeoutSeconds)
	}

	if config.LeetCodeSession != "" || config.CSRFToken != "" || config.OutputDir != "" {
		t.Error("Expected required keys to have no default")
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"leetcode_session": "session-value",
		"csrftoken": "csrf-value",
		"output_dir": "/tmp/solutions"
	}`)

	config, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "session-value", config.LeetCodeSession)
	assert.Equal(t, "csrf-value", config.CSRFToken)
	assert.Equal(t, "/tmp/solutions", config.OutputDir)
	assert.Equal(t, DefaultBaseURL, config.BaseURL)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
leetcode_session: session-value
csrftoken: csrf-value
output_dir: ./out
timeout_seconds: 10
logging:
  level: debug
`)

	config, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "./out", config.OutputDir)
	assert.Equal(t, 10, config.TimeoutSeconds)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigMissing))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfig))
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"truncated json", "config.json", `{"leetcode_session": "abc"`},
		{"json array", "config.json", `["not", "an", "object"]`},
		{"bad yaml", "config.yml", "leetcode_session: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigMalformed), err.Error())
		})
	}
}

func TestLoadMissingKey(t *testing.T) {
	path := writeFile(t, "config.json", `{"leetcode_session": "abc", "output_dir": "out"}`)

	_, err := Load(path, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigKeyMissing))
	assert.Contains(t, err.Error(), "csrftoken")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEETDL_SESSION", "env-session")
	t.Setenv("LEETDL_CSRFTOKEN", "env-csrf")
	t.Setenv("LEETDL_OUTPUT_DIR", "/tmp/env-out")
	t.Setenv("LEETDL_LOG_LEVEL", "debug")
	t.Setenv("LEETDL_TIMEOUT_SECONDS", "5")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "env-session", config.LeetCodeSession)
	assert.Equal(t, "env-csrf", config.CSRFToken)
	assert.Equal(t, "/tmp/env-out", config.OutputDir)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 5, config.TimeoutSeconds)
}

func TestLoadFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("LEETDL_TIMEOUT_SECONDS", "soon")

	err := DefaultConfig().LoadFromEnv()
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfig))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := DefaultConfig()
		c.LeetCodeSession = "s"
		c.CSRFToken = "c"
		c.OutputDir = "out"
		return c
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing session", func(c *Config) { c.LeetCodeSession = "" }, true},
		{"blank output dir", func(c *Config) { c.OutputDir = "   " }, true},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	config.MergeCommandLineFlags(map[string]interface{}{
		"output":    "/flag/out",
		"log-level": "error",
		"csrftoken": "",
	})

	assert.Equal(t, "/flag/out", config.OutputDir)
	assert.Equal(t, "error", config.Logging.Level)
	assert.Equal(t, "", config.CSRFToken)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "leetdl.yaml")

	original := DefaultConfig()
	original.LeetCodeSession = "s"
	original.CSRFToken = "c"
	original.OutputDir = "out"
	require.NoError(t, original.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, original, loaded)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "********", MaskSecret("short"))
	assert.Equal(t, "abcd...wxyz", MaskSecret("abcdefghijklmnopqrstuvwxyz"))

	c := DefaultConfig()
	c.LeetCodeSession = "abcdefghijklmnop"
	masked := c.Masked()
	assert.Equal(t, "abcd...mnop", masked.LeetCodeSession)
	assert.Equal(t, "abcdefghijklmnop", c.LeetCodeSession)
}
