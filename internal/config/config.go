package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

type Paths struct {
	WorkspaceDir string `toml:"workspace_dir"`
}

// Compare tunes tokenization and batch scoring.
type Compare struct {
	DropEmptyTokens bool `toml:"drop_empty_tokens"`
	Workers         int  `toml:"workers"`
}

// Fetch configures retrieval of http(s) documents.
type Fetch struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryCount     int    `toml:"retry_count"`
	UserAgent      string `toml:"user_agent"`
}

type History struct {
	Enabled bool `toml:"enabled"`
}

type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

type Config struct {
	Paths   Paths   `toml:"paths"`
	Compare Compare `toml:"compare"`
	Fetch   Fetch   `toml:"fetch"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

func Default() Config {
	return Config{
		Fetch: Fetch{
			TimeoutSeconds: 60,
			RetryCount:     2,
			UserAgent:      "pdfsim",
		},
		History: History{Enabled: true},
		Logging: Logging{Format: "console", Level: "info"},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pdfsim/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the path that was consulted and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("pdfsim.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	workspaceDir := strings.TrimSpace(c.Paths.WorkspaceDir)
	if workspaceDir == "" {
		workspaceDir = strings.TrimSpace(os.Getenv("PDFSIM_HOME"))
	}
	if workspaceDir != "" {
		expanded, err := expandPath(workspaceDir)
		if err != nil {
			return fmt.Errorf("workspace_dir: %w", err)
		}
		workspaceDir = expanded
	}
	c.Paths.WorkspaceDir = workspaceDir

	c.Fetch.UserAgent = strings.TrimSpace(c.Fetch.UserAgent)
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = Default().Fetch.UserAgent
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Compare.Workers < 0 {
		return fmt.Errorf("compare.workers must be >= 0, got %d", c.Compare.Workers)
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.RetryCount < 0 {
		return fmt.Errorf("fetch.retry_count must be >= 0, got %d", c.Fetch.RetryCount)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
