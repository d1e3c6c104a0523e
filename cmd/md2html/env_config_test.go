package main

// Notes:
// - Tests using t.Setenv cannot run in parallel.

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MD2HTML_CONFIG", "site")
	t.Setenv("MD2HTML_WORKERS", "3")
	t.Setenv("MD2HTML_EXTENSIONS", "highlight, typography,,")
	t.Setenv("MD2HTML_LOG_LEVEL", "debug")

	env := loadEnvConfig()

	if env.ConfigPath != "site" {
		t.Errorf("ConfigPath = %q, want site", env.ConfigPath)
	}
	if env.Workers != 3 {
		t.Errorf("Workers = %d, want 3", env.Workers)
	}
	if want := []string{"highlight", "typography"}; !slices.Equal(env.Extensions, want) {
		t.Errorf("Extensions = %v, want %v", env.Extensions, want)
	}
	if env.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", env.LogLevel)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	for _, v := range []string{"many", "-2", "0"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("MD2HTML_WORKERS", v)
			if got := loadEnvConfig().Workers; got != 0 {
				t.Errorf("Workers = %d for %q, want 0", got, v)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MD2HTML_WORKER", "2")
	t.Setenv("MD2HTML_CONFIG", "site")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "unknown environment variable MD2HTML_WORKER ") {
		t.Errorf("output = %q, want warning for MD2HTML_WORKER", buf.String())
	}
	if strings.Contains(buf.String(), "MD2HTML_CONFIG") {
		t.Errorf("output = %q, known variable reported", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence over the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Extensions = []config.ExtensionConfig{
		{Name: "highlight", Config: map[string]any{"class": "hl"}},
		{Name: "autolink"},
	}
	cfg.Log.Level = "warn"

	applyEnvConfig(&envConfig{Extensions: []string{"Highlight", "typography"}, LogLevel: "debug"}, cfg)

	if got := cfg.ExtensionNames(); !slices.Equal(got, []string{"Highlight", "typography"}) {
		t.Errorf("ExtensionNames() = %v", got)
	}
	if cfg.Extensions[0].Config["class"] != "hl" {
		t.Errorf("highlight options lost: %v", cfg.Extensions[0].Config)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestApplyEnvConfig_EmptyKeepsConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Extensions = []config.ExtensionConfig{{Name: "autolink"}}

	applyEnvConfig(&envConfig{}, cfg)

	if got := cfg.ExtensionNames(); !slices.Equal(got, []string{"autolink"}) {
		t.Errorf("ExtensionNames() = %v, want [autolink]", got)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want default warn", cfg.Log.Level)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b ,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
