package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Akaiko1/image-viewer/internal/errors"
	"github.com/Akaiko1/image-viewer/internal/logging"
)

// DefaultExtensions is the Allowed Extension Set used when the config names none.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp"}

// Config defines browsing behaviour and UI settings.
type Config struct {
	Root         string   `yaml:"root"`       // Explicit root, bypasses discovery
	Extensions   []string `yaml:"extensions"` // Allowed image suffixes, without dot
	ShowHidden   bool     `yaml:"show_hidden"`
	SortDirs     bool     `yaml:"sort_dirs"`
	MaxDepth     int      `yaml:"max_depth"` // Depth limit for tree snapshots, -1 unlimited
	Watch        bool     `yaml:"watch"`     // Refresh expanded branches on filesystem changes
	LogLevel     string   `yaml:"log_level"`
	ConsoleLines int      `yaml:"console_lines"`
	Window       struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"window"`
	Detection struct {
		MinScore float64 `yaml:"min_score"` // Detections below this are not drawn
	} `yaml:"detection"`
}

// DefaultConfig returns a configuration with sensible defaults: root discovery,
// the five standard image suffixes, hidden files disabled, directories first.
func DefaultConfig() *Config {
	cfg := &Config{
		Extensions:   append([]string(nil), DefaultExtensions...),
		ShowHidden:   false,
		SortDirs:     true,
		MaxDepth:     15,
		Watch:        true,
		LogLevel:     "info",
		ConsoleLines: 500,
	}
	cfg.Window.Width = 1200
	cfg.Window.Height = 800
	cfg.Detection.MinScore = 0.5
	return cfg
}

// DefaultPath returns ~/.config/image-viewer/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "image-viewer", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields the defaults; keys
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", apperrors.New(apperrors.InvalidConfig, path, err))
	}

	cfg.Extensions = normalizeExtensions(cfg.Extensions)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return apperrors.Newf(apperrors.InvalidConfig, "nil config")
	}
	if len(c.Extensions) == 0 {
		return apperrors.Newf(apperrors.InvalidConfig, "at least one image extension is required")
	}
	for i, ext := range c.Extensions {
		if ext == "" || strings.ContainsAny(ext, `/\*?{},[]`) {
			return apperrors.Newf(apperrors.InvalidConfig, "extension %d: invalid suffix %q", i, ext)
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return apperrors.Newf(apperrors.InvalidConfig, "window size must be positive")
	}
	if c.Detection.MinScore < 0 || c.Detection.MinScore > 1 {
		return apperrors.Newf(apperrors.InvalidConfig, "detection.min_score must be within [0, 1]")
	}
	if c.ConsoleLines < 1 {
		return apperrors.Newf(apperrors.InvalidConfig, "console_lines must be >= 1")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.Newf(apperrors.InvalidConfig, "unknown log level %q", c.LogLevel)
	}
	return nil
}

// normalizeExtensions lower-cases suffixes and strips a leading "." or "*.".
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		ext = strings.TrimPrefix(strings.TrimPrefix(ext, "*"), ".")
		if !seen[ext] {
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}
