package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds the application configuration.
type Config struct {
	Annotation AnnotationConfig `json:"annotation"`
	Output     OutputConfig     `json:"output"`
}

// AnnotationConfig holds the labeling parameters.
type AnnotationConfig struct {
	Label    string `json:"label" validate:"required"`
	RectSize int    `json:"rect_size" validate:"gte=2"`
}

// OutputConfig holds configuration for exported files.
type OutputConfig struct {
	PreviewFormat string `json:"preview_format" validate:"oneof=png jpg jpeg"`
	Dir           string `json:"dir"`
}

// Default returns a configuration with default values: the reference tool's
// label constant and its 600x600 rectangle.
func Default() *Config {
	return &Config{
		Annotation: AnnotationConfig{
			Label:    "d",
			RectSize: 600,
		},
		Output: OutputConfig{
			PreviewFormat: "png",
			Dir:           "",
		},
	}
}

// HalfExtent returns half the rectangle side length.
func (c *Config) HalfExtent() float64 {
	return float64(c.Annotation.RectSize) / 2
}

// LoadFromFile loads configuration from a JSON file.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file.
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "labelmed", "config.json")
}
