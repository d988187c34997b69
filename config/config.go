// Package config provides configuration loading and management for canondocs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete canondocs configuration
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Paths    PathsConfig    `yaml:"paths"`
}

// RegistryConfig configures the upstream specification repository
type RegistryConfig struct {
	// URL is the git URL of the published specification repository
	URL string `yaml:"url"`
	// Branch is the branch to track (empty = remote default)
	Branch string `yaml:"branch"`
	// CloneTimeout is the maximum time for a clone or pull
	CloneTimeout time.Duration `yaml:"clone_timeout"`
	// CloneDepth limits history depth (0 = full history)
	CloneDepth int `yaml:"clone_depth"`
}

// PathsConfig configures the local directories the pipeline reads and writes
type PathsConfig struct {
	// SpecsDir is where the specification repository is fetched to
	SpecsDir string `yaml:"specs_dir"`
	// SiteDir is the documentation output directory
	SiteDir string `yaml:"site_dir"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:          "https://github.com/opencanon/specifications.git",
			Branch:       "",
			CloneTimeout: 2 * time.Minute,
			CloneDepth:   1,
		},
		Paths: PathsConfig{
			SpecsDir: "specifications",
			SiteDir:  "docs/specifications",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Registry.URL == "" {
		return fmt.Errorf("registry.url is required")
	}
	if c.Registry.CloneTimeout <= 0 {
		return fmt.Errorf("registry.clone_timeout must be positive")
	}
	if c.Paths.SpecsDir == "" {
		return fmt.Errorf("paths.specs_dir is required")
	}
	if c.Paths.SiteDir == "" {
		return fmt.Errorf("paths.site_dir is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Registry
	if other.Registry.URL != "" {
		c.Registry.URL = other.Registry.URL
	}
	if other.Registry.Branch != "" {
		c.Registry.Branch = other.Registry.Branch
	}
	if other.Registry.CloneTimeout != 0 {
		c.Registry.CloneTimeout = other.Registry.CloneTimeout
	}
	if other.Registry.CloneDepth != 0 {
		c.Registry.CloneDepth = other.Registry.CloneDepth
	}

	// Paths
	if other.Paths.SpecsDir != "" {
		c.Paths.SpecsDir = other.Paths.SpecsDir
	}
	if other.Paths.SiteDir != "" {
		c.Paths.SiteDir = other.Paths.SiteDir
	}
}
