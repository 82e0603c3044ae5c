// Package config provides persisted preferences for the editor.
// Precedence: CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultAutosaveInterval is used when no interval is configured.
const DefaultAutosaveInterval = 2 * time.Minute

// Config holds all persisted preferences consumed by the editor core.
type Config struct {
	// Theme is the UI theme name, stored here for the GUI layer; the
	// core only persists it.
	Theme string `yaml:"theme"`

	// ThumbnailSize is the longest-edge pixel size of page-list
	// thumbnails.
	ThumbnailSize int `yaml:"thumbnail-size"`

	// DefaultPageWidth and DefaultPageHeight size newly inserted blank
	// pages, in points. Defaults are A4 portrait.
	DefaultPageWidth  float64 `yaml:"default-page-width"`
	DefaultPageHeight float64 `yaml:"default-page-height"`

	// AutosaveInterval is the period between autosave checks; 0
	// disables autosave.
	AutosaveInterval time.Duration `yaml:"autosave-interval"`

	// CacheDir receives autosave output files.
	CacheDir string `yaml:"cache-dir"`

	// FontFile is the TTF used when exporting text elements.
	FontFile string `yaml:"font-file"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log-level"`

	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log-format"`
}

// Load reads preferences from the given file (or ~/.pdf-editor.yaml when
// empty), environment variables with the PDFEDITOR prefix, and defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
			v.SetConfigName(".pdf-editor")
			v.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; defaults and env apply.
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PDFEDITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Theme:             v.GetString("theme"),
		ThumbnailSize:     v.GetInt("thumbnail-size"),
		DefaultPageWidth:  v.GetFloat64("default-page-width"),
		DefaultPageHeight: v.GetFloat64("default-page-height"),
		AutosaveInterval:  v.GetDuration("autosave-interval"),
		CacheDir:          v.GetString("cache-dir"),
		FontFile:          v.GetString("font-file"),
		LogLevel:          v.GetString("log-level"),
		LogFormat:         v.GetString("log-format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = "."
	}

	v.SetDefault("theme", "dark_teal")
	v.SetDefault("thumbnail-size", 160)
	v.SetDefault("default-page-width", 595.0)
	v.SetDefault("default-page-height", 842.0)
	v.SetDefault("autosave-interval", DefaultAutosaveInterval)
	v.SetDefault("cache-dir", filepath.Join(cache, "pdf-editor"))
	v.SetDefault("font-file", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
}

// Validate checks the preferences and normalizes derived paths, creating
// the cache directory if needed.
func (c *Config) Validate() error {
	if c.ThumbnailSize <= 0 {
		return fmt.Errorf("thumbnail-size must be positive, got %d", c.ThumbnailSize)
	}
	if c.DefaultPageWidth <= 0 || c.DefaultPageHeight <= 0 {
		return fmt.Errorf("default page size must be positive, got %gx%g", c.DefaultPageWidth, c.DefaultPageHeight)
	}
	if c.AutosaveInterval < 0 {
		return fmt.Errorf("autosave-interval must not be negative, got %s", c.AutosaveInterval)
	}

	if c.CacheDir == "" {
		return fmt.Errorf("cache-dir cannot be empty")
	}
	if strings.HasPrefix(c.CacheDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to expand home directory in cache-dir: %w", err)
		}
		c.CacheDir = filepath.Join(home, c.CacheDir[2:])
	}
	if err := os.MkdirAll(c.CacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", c.CacheDir, err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		return fmt.Errorf("invalid log-level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log-format %q, must be console or json", c.LogFormat)
	}

	return nil
}

// Save writes the preferences to path as YAML, atomically. The GUI layer
// calls this whenever a preference changes so the next startup sees it.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}
	return nil
}

// DefaultPath returns the default preferences file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pdf-editor.yaml"
	}
	return filepath.Join(home, ".pdf-editor.yaml")
}
