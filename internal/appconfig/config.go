// Package appconfig manages application configuration and its file location.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/treykane/paccu/internal/util"
)

// UIConfig contains list display settings.
type UIConfig struct {
	Title           string `yaml:"title"`
	HighlightSymbol string `yaml:"highlight_symbol"`
}

// Config holds application-level configuration.
type Config struct {
	// Server is a PulseAudio server string; empty uses the environment default.
	Server  string   `yaml:"server"`
	AppName string   `yaml:"app_name"`
	Notify  bool     `yaml:"notify"`
	UI      UIConfig `yaml:"ui"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		AppName: util.ClientName,
		UI: UIConfig{
			Title:           util.DefaultTitle,
			HighlightSymbol: util.DefaultHighlightSymbol,
		},
	}
}

// ConfigDir returns the application config directory path,
// $XDG_CONFIG_HOME/paccu (usually ~/.config/paccu).
func ConfigDir() (string, error) {
	if strings.TrimSpace(xdg.ConfigHome) == "" {
		return "", fmt.Errorf("resolve config home: XDG config directory is unknown")
	}
	return filepath.Join(xdg.ConfigHome, util.AppName), nil
}

// FilePath returns the full path to config.yaml.
func FilePath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads config.yaml from the config directory.
// If the file doesn't exist, creates it with defaults.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return Config{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Server = strings.TrimSpace(c.Server)
	if strings.TrimSpace(c.AppName) == "" {
		c.AppName = util.ClientName
	}
	if strings.TrimSpace(c.UI.Title) == "" {
		c.UI.Title = util.DefaultTitle
	}
	if c.UI.HighlightSymbol == "" {
		c.UI.HighlightSymbol = util.DefaultHighlightSymbol
	}
}

// Save writes config to config.yaml.
func Save(cfg Config) error {
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
