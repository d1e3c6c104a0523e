package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logging"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength          = 4096
	MaxGlobLength          = 256
	MaxGlobs               = 64
	MaxExtensionNameLength = 64
	MaxExtensions          = 64
	MaxDurationLength      = 20 // "1m30s"
)

// Engine names accepted in render.engine.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// AppName is the directory name under the user config dir.
const AppName = "go-md2html"

// Config holds all configuration for a conversion run.
type Config struct {
	Input      InputConfig       `yaml:"input"`
	Output     OutputConfig      `yaml:"output"`
	Render     RenderConfig      `yaml:"render"`
	Extensions []ExtensionConfig `yaml:"extensions"`
	Log        LogConfig         `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Include    []string `yaml:"include"`    // doublestar globs, relative to the input dir
	Exclude    []string `yaml:"exclude"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// RenderConfig defines conversion options.
type RenderConfig struct {
	Engine   string `yaml:"engine"` // "native" (default) or "goldmark"
	SafeMode bool   `yaml:"safeMode"`
	PDF      bool   `yaml:"pdf"`     // Also write a PDF next to each HTML file
	Timeout  string `yaml:"timeout"` // Go duration, e.g. "30s"
}

// ExtensionConfig names one extension and its options.
type ExtensionConfig struct {
	Name   string         `yaml:"name"`
	Config map[string]any `yaml:"config"`
}

// LogConfig defines diagnostic logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error, critical
	Format string `yaml:"format"` // text or json
}

// Validate checks enums, globs, durations and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateGlobs("input.include", c.Input.Include); err != nil {
		return err
	}
	if err := validateGlobs("input.exclude", c.Input.Exclude); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Render.Engine) {
	case "", EngineNative, EngineGoldmark:
	default:
		return fmt.Errorf("%w: render.engine %q (must be native or goldmark)", ErrInvalidValue, c.Render.Engine)
	}
	if c.Render.Timeout != "" {
		if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxDurationLength); err != nil {
			return err
		}
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil {
			return fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: render.timeout must be positive, got %s", ErrInvalidValue, d)
		}
	}

	if len(c.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: extensions (%d entries, max %d)", ErrFieldTooLong, len(c.Extensions), MaxExtensions)
	}
	for i, ext := range c.Extensions {
		field := fmt.Sprintf("extensions[%d].name", i)
		if strings.TrimSpace(ext.Name) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field, ext.Name, MaxExtensionNameLength); err != nil {
			return err
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateGlobs checks count, length and doublestar syntax of patterns.
func validateGlobs(fieldName string, patterns []string) error {
	if len(patterns) > MaxGlobs {
		return fmt.Errorf("%w: %s (%d entries, max %d)", ErrFieldTooLong, fieldName, len(patterns), MaxGlobs)
	}
	for i, p := range patterns {
		field := fmt.Sprintf("%s[%d]", fieldName, i)
		if err := validateFieldLength(field, p, MaxGlobLength); err != nil {
			return err
		}
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %s: bad glob %q", ErrInvalidValue, field, p)
		}
	}
	return nil
}

// TimeoutDuration returns render.timeout parsed, or 0 when unset.
// Call Validate first; an unparsable value also yields 0.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Render.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ExtensionNames returns the configured extension names in order.
func (c *Config) ExtensionNames() []string {
	names := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		names = append(names, ext.Name)
	}
	return names
}

// ExtensionConfigs returns the per-extension options keyed by name.
func (c *Config) ExtensionConfigs() map[string]map[string]any {
	out := make(map[string]map[string]any, len(c.Extensions))
	for _, ext := range c.Extensions {
		if ext.Config != nil {
			out[ext.Name] = ext.Config
		}
	}
	return out
}

// DefaultConfig returns a configuration with every option at its default.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{Engine: EngineNative},
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// <name>.yaml and <name>.yml in the current directory, then in
// <user config dir>/go-md2html/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
