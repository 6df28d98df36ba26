// Package config provides configuration loading and parsing functionality
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFormat represents the configuration file format
type ConfigFormat string

const (
	FormatYAML ConfigFormat = "yaml"
	FormatJSON ConfigFormat = "json"
)

// FormatFromPath determines the configuration format from a file extension
func FormatFromPath(filename string) (ConfigFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Loader handles configuration loading from various sources
type Loader struct {
	// Configuration search paths
	searchPaths []string

	// Environment variable prefix
	envPrefix string

	// Default configuration
	defaultConfig *Config

	// lookupEnv reads environment variables
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	paths := []string{".", "./config"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".pointdemo"))
	}
	return &Loader{
		searchPaths:   paths,
		envPrefix:     "POINTDEMO",
		defaultConfig: DefaultConfig(),
		lookupEnv:     os.LookupEnv,
	}
}

// SetSearchPaths sets the configuration file search paths
func (l *Loader) SetSearchPaths(paths []string) *Loader {
	l.searchPaths = paths
	return l
}

// SetEnvPrefix sets the environment variable prefix
func (l *Loader) SetEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// SetDefaultConfig sets the default configuration
func (l *Loader) SetDefaultConfig(config *Config) *Loader {
	l.defaultConfig = config
	return l
}

// SetLookupEnv replaces the environment lookup function
func (l *Loader) SetLookupEnv(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// Load loads configuration from the specified file, or discovers one in
// the search paths when filename is empty
func (l *Loader) Load(filename string) (*Config, error) {
	if filename == "" {
		return l.AutoLoad()
	}
	config, err := l.LoadFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from file %s: %w", filename, err)
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific file
func (l *Loader) LoadFromFile(filename string) (*Config, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.finish(data, format)
}

// LoadFromReader loads configuration from an io.Reader
func (l *Loader) LoadFromReader(reader io.Reader, format ConfigFormat) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration data: %w", err)
	}

	return l.finish(data, format)
}

// AutoLoad automatically discovers and loads configuration. Missing files
// are not an error: defaults plus environment overrides are used instead.
func (l *Loader) AutoLoad() (*Config, error) {
	configFile, err := l.findConfigFile()
	if errors.Is(err, ErrConfigFileNotFound) {
		return l.finish(nil, "")
	}
	if err != nil {
		return nil, err
	}

	config, err := l.LoadFromFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
	}
	return config, nil
}

// finish parses data over the defaults, applies environment overrides and
// validates the result
func (l *Loader) finish(data []byte, format ConfigFormat) (*Config, error) {
	config := l.defaults()

	if len(data) > 0 {
		if err := parseConfig(data, format, config); err != nil {
			return nil, err
		}
	}

	if err := l.loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (l *Loader) defaults() *Config {
	if l.defaultConfig == nil {
		return DefaultConfig()
	}
	return l.defaultConfig.Clone()
}

// findConfigFile searches for configuration files in search paths
func (l *Loader) findConfigFile() (string, error) {
	filenames := []string{
		"pointdemo.yaml", "pointdemo.yml", "pointdemo.json",
	}

	for _, searchPath := range l.searchPaths {
		for _, filename := range filenames {
			fullPath := filepath.Join(searchPath, filename)
			if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
				return fullPath, nil
			}
		}
	}

	return "", ErrConfigFileNotFound
}

// parseConfig decodes data into config; fields absent from data keep
// their current values
func parseConfig(data []byte, format ConfigFormat, config *Config) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return nil
}

// loadFromEnv loads configuration overrides from environment variables
func (l *Loader) loadFromEnv(config *Config) error {
	get := func(key string) (string, bool) {
		val, ok := l.lookupEnv(l.envPrefix + "_" + key)
		return val, ok && val != ""
	}

	// App configuration
	if val, ok := get("APP_NAME"); ok {
		config.App.Name = val
	}
	if val, ok := get("APP_ENVIRONMENT"); ok {
		config.App.Environment = Environment(val)
	}

	// Log configuration
	if val, ok := get("LOG_LEVEL"); ok {
		config.Log.Level = LogLevel(strings.ToLower(val))
	}
	if val, ok := get("LOG_FORMAT"); ok {
		config.Log.Format = val
	}
	if val, ok := get("LOG_OUTPUT"); ok {
		config.Log.Output = val
	}

	// Demo configuration
	if val, ok := get("DEMO_X"); ok {
		x, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return envError("DEMO_X", err)
		}
		config.Demo.Point.X = x
	}
	if val, ok := get("DEMO_Y"); ok {
		y, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return envError("DEMO_Y", err)
		}
		config.Demo.Point.Y = y
	}
	if val, ok := get("DEMO_NUMBERS"); ok {
		numbers, err := parseNumbers(val)
		if err != nil {
			return envError("DEMO_NUMBERS", err)
		}
		config.Demo.Numbers = numbers
		config.Demo.Range = nil
	}
	if val, ok := get("DEMO_THRESHOLD"); ok {
		threshold, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return envError("DEMO_THRESHOLD", err)
		}
		config.Demo.Threshold = threshold
	}

	return nil
}

func envError(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrEnvironmentVarError, key, err)
}

// parseNumbers parses a comma separated list of integers
func parseNumbers(val string) ([]int, error) {
	fields := strings.Split(val, ",")
	numbers := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
