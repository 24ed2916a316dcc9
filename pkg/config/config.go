// Package config provides configuration loading and management for neurotree.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Import parameters
	Import struct {
		// Separator names the field separator: comma, pipe, tab, semicolon or
		// space. Empty means sniff it from the input.
		Separator string `yaml:"separator" validate:"omitempty,oneof=comma pipe tab semicolon space"`

		// HasHeader treats the first line of the input as the column header
		HasHeader bool `yaml:"hasHeader"`

		// Header names the columns explicitly, id and parent columns included
		Header []string `yaml:"header,omitempty" validate:"omitempty,min=2,dive,required"`
	} `yaml:"import"`

	// Segment decomposition parameters
	Segments struct {
		// Link prefixes every segment with its start node's parent
		Link bool `yaml:"link"`
	} `yaml:"segments"`

	// Rendering parameters
	Render struct {
		// Axis is the axis projected away when rendering traces
		Axis string `yaml:"axis" validate:"oneof=x y z"`

		// Width and Height are the image size in pixels
		Width  int `yaml:"width" validate:"gt=0"`
		Height int `yaml:"height" validate:"gt=0"`

		// Margin is the blank border in pixels
		Margin int `yaml:"margin" validate:"gte=0"`
	} `yaml:"render"`

	// Output parameters
	Output struct {
		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Sniff the separator and expect a header line
	cfg.Import.Separator = ""
	cfg.Import.HasHeader = true

	cfg.Segments.Link = true

	cfg.Render.Axis = "z"
	cfg.Render.Width = 512
	cfg.Render.Height = 512
	cfg.Render.Margin = 8

	cfg.Output.Verbose = false

	return cfg
}

// separators maps configured separator names to the text they split on
var separators = map[string]string{
	"comma":     ",",
	"pipe":      "|",
	"tab":       "\t",
	"semicolon": ";",
	"space":     " ",
}

// Separator returns the configured field separator, or "" if it should be sniffed
func (c *Config) Separator() string {
	return separators[c.Import.Separator]
}

// Validate checks field constraints and the render margin against the canvas
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if 2*c.Render.Margin >= c.Render.Width || 2*c.Render.Margin >= c.Render.Height {
		return fmt.Errorf("invalid config: render margin %d too large for %dx%d",
			c.Render.Margin, c.Render.Width, c.Render.Height)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
