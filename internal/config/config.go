package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
)

// Config represents the application configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Module  ModuleConfig  `yaml:"module"`
	IDs     IDConfig      `yaml:"ids"`
	Watch   WatchConfig   `yaml:"watch"`
	History HistoryConfig `yaml:"history"`
	Notify  NotifyConfig  `yaml:"notify"`
}

// ContentConfig locates the lesson tree and the generated manifest.
type ContentConfig struct {
	Root             string `yaml:"root"`
	Output           string `yaml:"output"`      // Manifest file name, relative to Root
	IgnoreFile       string `yaml:"ignore_file"` // gitignore-style patterns, relative to Root
	RootSectionTitle string `yaml:"root_section_title"`
}

// ModuleConfig holds the fixed identity fields copied into every manifest.
type ModuleConfig struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Language    string    `yaml:"language"`
	Direction   Direction `yaml:"direction"`
	Version     string    `yaml:"version"`
}

// IDConfig controls how duplicate slugs within a section are handled.
type IDConfig struct {
	OnDuplicate DuplicatePolicy `yaml:"on_duplicate"`
}

// WatchConfig configures the long-running watch mode.
type WatchConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	ResyncInterval time.Duration `yaml:"resync_interval"` // 0 disables periodic resync
	MetricsAddr    string        `yaml:"metrics_addr"`    // empty disables /metrics
}

// HistoryConfig configures the SQLite run history. An empty Path disables it.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// NotifyConfig configures change notifications. An empty NATSURL disables them.
type NotifyConfig struct {
	NATSURL    string `yaml:"nats_url"`
	Subject    string `yaml:"subject"`
	MaxRetries int    `yaml:"max_retries"` // Extra publish attempts after a failure
}

// OutputPath returns the manifest location inside the content root.
func (c *Config) OutputPath() string {
	return filepath.Join(c.Content.Root, c.Content.Output)
}

// Load returns the default configuration overlaid with the YAML file at
// configPath. A missing file is not an error: the defaults are the
// configuration.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No configuration file, using built-in defaults", "path", configPath)
		return cfg, nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().WithPath(configPath).Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			Fatal().WithPath(configPath).Build()
	}

	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init creates a new configuration file populated with the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithPath(configPath).Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// loadEnvFile loads the first of .env / .env.local that exists.
// Variables already present in the environment win.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			slog.Debug("Loaded environment variables", "path", envPath)
			return
		}
	}
}
