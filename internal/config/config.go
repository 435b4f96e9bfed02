// Package config provides configuration management for the location analyzer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "configs/analyzer.yaml"

// Configuration validation errors.
var (
	ErrInvalidMergeStrategy = errors.New("analyzer.merge.strategy must be 'index' or 'scan'")
	ErrInvalidOutputFormat  = errors.New("analyzer.output.format must be 'markdown' or 'json'")
	ErrSignRequiresMarkdown = errors.New("analyzer.output.sign requires markdown output")
	ErrInvalidLogLevel      = errors.New("analyzer.logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("analyzer.logging.format must be 'text' or 'json'")
	ErrMissingServerAddr    = errors.New("server.addr is required")
	ErrInvalidGinMode       = errors.New("server.gin_mode must be one of: debug, release, test")
	ErrInvalidMaxBody       = errors.New("server.max_body_kb must be at least 1")
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config represents the complete analyzer configuration.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Server   ServerConfig   `yaml:"server"`
}

// AnalyzerConfig contains analysis run settings.
type AnalyzerConfig struct {
	Input   InputConfig   `yaml:"input"`
	Merge   MergeConfig   `yaml:"merge"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig points at the two input files.
type InputConfig struct {
	Locations string `yaml:"locations"`
	Metadata  string `yaml:"metadata"`
}

// MergeConfig selects the merge strategy.
type MergeConfig struct {
	Strategy string `yaml:"strategy"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Format      string `yaml:"format"`
	Path        string `yaml:"path"`
	PrettyPrint bool   `yaml:"pretty_print"`
	Sign        bool   `yaml:"sign"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	GinMode   string `yaml:"gin_mode"`
	MaxBodyKb int    `yaml:"max_body_kb"`
}

// Default returns a configuration with every field set to a usable value.
func Default() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Merge: MergeConfig{Strategy: "index"},
			Output: OutputConfig{
				Format:      FormatMarkdown,
				PrettyPrint: true,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
		Server: ServerConfig{
			Addr:      ":8080",
			GinMode:   "release",
			MaxBodyKb: 1024,
		},
	}
}

// LoadConfig loads configuration from YAML file. Keys missing from the file
// keep their Default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Analyzer.Merge.Strategy {
	case "", "index", "scan":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidMergeStrategy, c.Analyzer.Merge.Strategy)
	}

	format := c.GetOutputFormat()
	if format != FormatMarkdown && format != FormatJSON {
		return ErrInvalidOutputFormat
	}

	if c.Analyzer.Output.Sign && format != FormatMarkdown {
		return ErrSignRequiresMarkdown
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Analyzer.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Analyzer.Logging.Format != "text" && c.Analyzer.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	// Validate server config
	if c.Server.Addr == "" {
		return ErrMissingServerAddr
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.GinMode] {
		return ErrInvalidGinMode
	}

	if c.Server.MaxBodyKb < 1 {
		return ErrInvalidMaxBody
	}

	return nil
}

// GetOutputFormat returns the lower-cased output format, markdown when unset.
func (c *Config) GetOutputFormat() string {
	if c.Analyzer.Output.Format == "" {
		return FormatMarkdown
	}

	return strings.ToLower(c.Analyzer.Output.Format)
}

// GetMaxBodyBytes returns the request body limit in bytes.
func (s *ServerConfig) GetMaxBodyBytes() int64 {
	return int64(s.MaxBodyKb) * 1024
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Strategy: %s, Format: %s, Sign: %t, Addr: %s}",
		c.Analyzer.Merge.Strategy,
		c.GetOutputFormat(),
		c.Analyzer.Output.Sign,
		c.Server.Addr,
	)
}
