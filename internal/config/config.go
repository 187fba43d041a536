// =============================================================================
// Master Data Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and validating the application
// configuration. All settings are optional; the converter runs with defaults
// when no configuration file is present.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults (applyDefaults)
//   2. YAML file (config.yaml, or the file given with --config)
//   3. Environment variables prefixed with MASTERDATA_
//        MASTERDATA_LOGGING_LEVEL=debug
//        MASTERDATA_REGION_CONNECTORS=xx:xx-connector,yy:yy-connector
//        MASTERDATA_SERVER_ADDR=:9090
//   Variable names are derived from the Go field names (split_words).
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "MASTERDATA"

// DefaultConfigFile is the configuration file looked up when --config is not given.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// Logging controls the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Input controls how input tables are read.
	Input InputConfig `yaml:"input"`

	// Output controls how the JSON document is written.
	Output OutputConfig `yaml:"output"`

	// RegionConnectors maps lowercase country codes to region connector ids.
	// Entries here are merged over the built-in table, so a file only needs
	// to list additions and overrides.
	//
	// Example:
	//   region_connectors:
	//     pt: pt-e-redes
	//     ca: ca-green-button
	RegionConnectors map[string]string `yaml:"region_connectors" split_words:"true" validate:"dive,keys,len=2,lowercase,endkeys,required"`

	// Server holds settings for the serve command.
	Server ServerConfig `yaml:"server"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `yaml:"format" validate:"oneof=text json"`

	// Output is "stderr", "stdout", "file" or "both" (stderr + file).
	// Default: "stderr", which keeps stdout free for command output.
	Output string `yaml:"output" validate:"oneof=stderr stdout file both"`

	// FilePath is the log file used when Output is "file" or "both".
	FilePath string `yaml:"file_path" split_words:"true"`
}

// InputConfig contains settings for reading input tables.
type InputConfig struct {
	// Delimiter is the field separator for CSV input.
	// Common values: "," (comma), ";" (semicolon), "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter" validate:"required"`

	// Sheet is the XLSX sheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// OutputConfig contains settings for the JSON output document.
type OutputConfig struct {
	// Indent is the per-level indentation.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// FileMode is the permission of the written file, in octal.
	// Default: 0644
	FileMode os.FileMode `yaml:"file_mode" split_words:"true"`
}

// ServerConfig contains settings for the REST API.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8080"
	Addr string `yaml:"addr" validate:"required"`

	// PermissionAdministratorsFile is a JSON file produced by the "pa" conversion.
	PermissionAdministratorsFile string `yaml:"permission_administrators_file" split_words:"true"`

	// MarketDataAdministratorsFile is a JSON file produced by the "mda" conversion.
	MarketDataAdministratorsFile string `yaml:"market_data_administrators_file" split_words:"true"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load builds the configuration from defaults, an optional YAML file and the
// environment.
//
// PARAMETERS:
//   - configPath: The path to the YAML file. An empty path or a missing
//     DefaultConfigFile is not an error; any other missing file is.
//
// RETURNS:
//   - A pointer to the validated Config.
//   - An error if the file cannot be parsed or the result is invalid.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := loadFromFile(configPath, cfg); err != nil {
			if !(errors.Is(err, os.ErrNotExist) && configPath == DefaultConfigFile) {
				return nil, err
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// loadFromFile reads a YAML file over cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = "./logs/masterdata.log"
	}
	if cfg.Input.Delimiter == "" {
		cfg.Input.Delimiter = ","
	}
	if cfg.Output.Indent == "" {
		cfg.Output.Indent = "  "
	}
	if cfg.Output.FileMode == 0 {
		cfg.Output.FileMode = 0644
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	// Normalize connector keys so lookups by lowercased country always hit.
	if len(cfg.RegionConnectors) > 0 {
		normalized := make(map[string]string, len(cfg.RegionConnectors))
		for country, connector := range cfg.RegionConnectors {
			normalized[strings.ToLower(strings.TrimSpace(country))] = strings.TrimSpace(connector)
		}
		cfg.RegionConnectors = normalized
	}
}

// Validate checks the struct tags and the cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Logging.Output {
	case "file", "both":
		if strings.TrimSpace(c.Logging.FilePath) == "" {
			return fmt.Errorf("logging.file_path is required when logging.output is %q", c.Logging.Output)
		}
	}

	return nil
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c InputConfig) DelimiterRune() rune {
	switch c.Delimiter {
	case "\\t", "tab", "TAB":
		return '\t'
	}
	return []rune(c.Delimiter)[0]
}
