// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for wbdm configuration.
	DefaultConfigDir = ".wbdm"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultReposFile is the default repository registry file name.
	DefaultReposFile = "repos.yaml"
	// DefaultDatabaseFile is the SQLite file name inside a repository directory.
	DefaultDatabaseFile = "revisions.db"
)

// Environment variables that override the config file.
const (
	EnvLogLevel = "WBDM_LOG_LEVEL"
	EnvLogJSON  = "WBDM_LOG_JSON"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Log    LogConfig    `yaml:"log,omitempty"`
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`
}

// LogConfig holds configuration for structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
	// JSON switches from console output to JSON lines.
	JSON bool `yaml:"json,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite revision store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// For named repositories, this is computed using SQLitePathForRepo.
	Path string `yaml:"path,omitempty"`
}

// OutputConfig holds defaults for documents written by the CLI.
type OutputConfig struct {
	// Format is the document format: json or yaml.
	Format string `yaml:"format,omitempty"`
	// NoColor disables coloured diff output.
	NoColor bool `yaml:"no_color,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// Load loads configuration from the .wbdm directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if raw := os.Getenv(EnvLogJSON); raw != "" {
		jsonOutput, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvLogJSON, err)
		}
		c.Log.JSON = jsonOutput
	}
	return nil
}

// ConfigDir returns the path to the .wbdm config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// ReposFilePath returns the path to the repository registry.
func ReposFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultReposFile)
}

// Exists checks if a wbdm config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeRepoName converts a repository name to a valid directory name.
func SanitizeRepoName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// RepoDir returns the directory path for a given repository.
func RepoDir(basePath, repoName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "repos", SanitizeRepoName(repoName))
}

// SQLitePathForRepo returns the SQLite database path for a given repository.
func SQLitePathForRepo(basePath, repoName string) string {
	return filepath.Join(RepoDir(basePath, repoName), DefaultDatabaseFile)
}
