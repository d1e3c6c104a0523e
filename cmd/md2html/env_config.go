package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix marks the variables read by the CLI.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string   // MD2HTML_CONFIG: config file name or path
	Workers    int      // MD2HTML_WORKERS: parallel workers
	Extensions []string // MD2HTML_EXTENSIONS: comma-separated extension names
	LogLevel   string   // MD2HTML_LOG_LEVEL: diagnostic log level
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":     true,
	"MD2HTML_WORKERS":    true,
	"MD2HTML_EXTENSIONS": true,
	"MD2HTML_LOG_LEVEL":  true,
}

// loadEnvConfig reads configuration from environment variables.
// A non-numeric or negative MD2HTML_WORKERS is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2HTML_CONFIG"),
		Extensions: splitList(os.Getenv("MD2HTML_EXTENSIONS")),
		LogLevel:   os.Getenv("MD2HTML_LOG_LEVEL"),
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// warnUnknownEnvVars prints a warning for each unrecognized MD2HTML_* variable.
// Helps catch typos like MD2HTML_WORKER instead of MD2HTML_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if len(env.Extensions) > 0 {
		cfg.Extensions = enableExtensions(cfg.Extensions, env.Extensions)
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}

// enableExtensions returns names as the enabled list, keeping the options
// configured for any name already present in current.
func enableExtensions(current []config.ExtensionConfig, names []string) []config.ExtensionConfig {
	out := make([]config.ExtensionConfig, 0, len(names))
	for _, name := range names {
		ext := config.ExtensionConfig{Name: name}
		for _, c := range current {
			if strings.EqualFold(c.Name, name) {
				ext.Config = c.Config
				break
			}
		}
		out = append(out, ext)
	}
	return out
}
