package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override config values.
const EnvPrefix = "PATHPICK"

// Config represents the pathpick configuration
type Config struct {
	Timeout         int               `json:"timeout,omitempty" mapstructure:"timeout"` // milliseconds
	FollowRedirects *bool             `json:"followRedirects,omitempty" mapstructure:"followRedirects"`
	MaxRedirects    int               `json:"maxRedirects,omitempty" mapstructure:"maxRedirects"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty" mapstructure:"validateSSL"`
	Proxy           string            `json:"proxy,omitempty" mapstructure:"proxy"`
	MaxBodyBytes    int64             `json:"maxBodyBytes,omitempty" mapstructure:"maxBodyBytes"`
	Headers         map[string]string `json:"headers,omitempty" mapstructure:"headers"` // Default headers for all requests
	EnvFile         string            `json:"envFile,omitempty" mapstructure:"envFile"`
	OperatorURL     string            `json:"operatorUrl,omitempty" mapstructure:"operatorUrl"`
	ManifestDir     string            `json:"manifestDir,omitempty" mapstructure:"manifestDir"`
	HistoryDB       string            `json:"historyDb,omitempty" mapstructure:"historyDb"`
	SampleRate      float64           `json:"sampleRate,omitempty" mapstructure:"sampleRate"` // verifications per second
	LogLevel        string            `json:"logLevel,omitempty" mapstructure:"logLevel"`
	LogFile         string            `json:"logFile,omitempty" mapstructure:"logFile"`
	Verbose         *bool             `json:"verbose,omitempty" mapstructure:"verbose"`
	NoColor         *bool             `json:"noColor,omitempty" mapstructure:"noColor"`
	NoHistory       *bool             `json:"noHistory,omitempty" mapstructure:"noHistory"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetNoHistory reports whether verifications should not be recorded.
func (c *Config) GetNoHistory() bool {
	return getBool(c.NoHistory, false)
}

// TimeoutDuration returns Timeout as a duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// ConfigFilenames contains the possible config file names, in search order
var ConfigFilenames = []string{
	".pathpick.json",
	".pathpick.yaml",
	".pathpick.yml",
	"pathpick.config.json",
}

// envKeys maps config keys to the environment variable suffix that overrides them.
var envKeys = map[string]string{
	"timeout":         "TIMEOUT",
	"followRedirects": "FOLLOW_REDIRECTS",
	"maxRedirects":    "MAX_REDIRECTS",
	"validateSSL":     "VALIDATE_SSL",
	"proxy":           "PROXY",
	"maxBodyBytes":    "MAX_BODY_BYTES",
	"envFile":         "ENV_FILE",
	"operatorUrl":     "OPERATOR_URL",
	"manifestDir":     "MANIFEST_DIR",
	"historyDb":       "HISTORY_DB",
	"sampleRate":      "SAMPLE_RATE",
	"logLevel":        "LOG_LEVEL",
	"logFile":         "LOG_FILE",
	"verbose":         "VERBOSE",
	"noColor":         "NO_COLOR",
	"noHistory":       "NO_HISTORY",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory. PATHPICK_* environment variables
// override file values.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return load(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory.
// Without one, defaults plus environment overrides are returned.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return load(configPath)
		}
	}
	return load("")
}

// FoundConfigFile returns the config file FindAndLoadConfig would read, or "".
func FoundConfigFile(dir string) string {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

func load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for key, suffix := range envKeys {
		if err := v.BindEnv(key, EnvPrefix+"_"+suffix); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if configType := configTypeFor(path); configType != "" {
			v.SetConfigType(configType)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return DefaultConfig().Merge(&loaded), nil
}

func configTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return ""
	}
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.MaxBodyBytes > 0 {
		result.MaxBodyBytes = other.MaxBodyBytes
	}
	if other.EnvFile != "" {
		result.EnvFile = other.EnvFile
	}
	if other.OperatorURL != "" {
		result.OperatorURL = other.OperatorURL
	}
	if other.ManifestDir != "" {
		result.ManifestDir = other.ManifestDir
	}
	if other.HistoryDB != "" {
		result.HistoryDB = other.HistoryDB
	}
	if other.SampleRate > 0 {
		result.SampleRate = other.SampleRate
	}
	if other.LogLevel != "" {
		result.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		result.LogFile = other.LogFile
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.NoHistory != nil {
		result.NoHistory = other.NoHistory
	}

	// Merge headers
	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	return &result
}

// SaveConfig saves the configuration to a file as JSON
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
