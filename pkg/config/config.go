package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "leetdl/pkg/errors"
)

const (
	// DefaultPath is the config file looked up when no --config flag is given
	DefaultPath = "config.json"

	// DefaultBaseURL is the LeetCode origin every request goes to
	DefaultBaseURL = "https://leetcode.com"

	// DefaultUserAgent mimics a desktop browser
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36"

	// DefaultTimeoutSeconds bounds every HTTP request
	DefaultTimeoutSeconds = 30
)

var (
	// ErrConfigMissing is returned when the config file does not exist
	ErrConfigMissing = errors.New("missing configuration")
	// ErrConfigMalformed is returned when the config file cannot be decoded
	ErrConfigMalformed = errors.New("malformed configuration")
	// ErrConfigKeyMissing is returned when a required key is absent or empty
	ErrConfigKeyMissing = errors.New("missing configuration key")
)

// Config holds the credentials and output location of a download run
type Config struct {
	// LeetCode session cookies
	LeetCodeSession string `yaml:"leetcode_session" json:"leetcode_session"`
	CSRFToken       string `yaml:"csrftoken" json:"csrftoken"`

	// Root of the problem/language tree
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// Optional HTTP settings
	BaseURL        string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DefaultConfig returns a Config with the optional settings filled in.
// The credential and output keys are left empty on purpose.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		UserAgent:      DefaultUserAgent,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Timeout returns the HTTP timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadFromFile decodes the file at path into c.
// YAML is used for .yaml/.yml files, JSON for everything else.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.Wrap(apperrors.ErrorTypeConfig, ErrConfigMissing, "config file %s", path)
		}
		return apperrors.Wrap(apperrors.ErrorTypeConfig, err, "failed to read config file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeConfig, fmt.Errorf("%w: %v", ErrConfigMalformed, err), "config file %s", path)
	}

	return nil
}

// LoadFromEnv overrides values from LEETDL_* environment variables
func (c *Config) LoadFromEnv() error {
	if session := os.Getenv("LEETDL_SESSION"); session != "" {
		c.LeetCodeSession = session
	}
	if token := os.Getenv("LEETDL_CSRFTOKEN"); token != "" {
		c.CSRFToken = token
	}
	if outputDir := os.Getenv("LEETDL_OUTPUT_DIR"); outputDir != "" {
		c.OutputDir = outputDir
	}
	if baseURL := os.Getenv("LEETDL_BASE_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
	if logLevel := os.Getenv("LEETDL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if timeout := os.Getenv("LEETDL_TIMEOUT_SECONDS"); timeout != "" {
		val, err := strconv.Atoi(timeout)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrorTypeConfig, err, "invalid LEETDL_TIMEOUT_SECONDS")
		}
		c.TimeoutSeconds = val
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.OutputDir = outputDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if session, ok := flags["leetcode-session"].(string); ok && session != "" {
		c.LeetCodeSession = session
	}
	if token, ok := flags["csrftoken"].(string); ok && token != "" {
		c.CSRFToken = token
	}
}

// Validate checks required keys and the optional settings
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		key   string
		value string
	}{
		{"leetcode_session", c.LeetCodeSession},
		{"csrftoken", c.CSRFToken},
		{"output_dir", c.OutputDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrConfigKeyMissing, r.key))
		}
	}

	if c.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("timeout_seconds must be positive"))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return apperrors.Wrap(apperrors.ErrorTypeConfig, errors.Join(errs...), "configuration validation failed")
	}

	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Masked returns a copy with the cookie values hidden
func (c *Config) Masked() *Config {
	masked := *c
	masked.LeetCodeSession = MaskSecret(c.LeetCodeSession)
	masked.CSRFToken = MaskSecret(c.CSRFToken)
	return &masked
}

// MaskSecret masks all but the first 4 and last 4 characters of a string
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Load loads configuration with precedence flags > environment > file > defaults.
// The file must exist; .env files are optional.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")

	if configPath == "" {
		configPath = DefaultPath
	}

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, err
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, err
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
