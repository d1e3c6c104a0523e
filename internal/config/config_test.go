package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Render.Engine != EngineNative {
		t.Errorf("Render.Engine = %q, want %q", cfg.Render.Engine, EngineNative)
	}
	if cfg.Render.SafeMode || cfg.Render.PDF {
		t.Error("Render flags enabled by default")
	}
	if len(cfg.Extensions) != 0 {
		t.Errorf("Extensions = %v, want none", cfg.Extensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults valid", mutate: func(*Config) {}},
		{name: "goldmark engine", mutate: func(c *Config) { c.Render.Engine = "Goldmark" }},
		{name: "empty engine", mutate: func(c *Config) { c.Render.Engine = "" }},
		{name: "unknown engine", mutate: func(c *Config) { c.Render.Engine = "pandoc" }, wantErr: ErrInvalidValue},
		{name: "valid timeout", mutate: func(c *Config) { c.Render.Timeout = "45s" }},
		{name: "bad timeout", mutate: func(c *Config) { c.Render.Timeout = "soon" }, wantErr: ErrInvalidValue},
		{name: "negative timeout", mutate: func(c *Config) { c.Render.Timeout = "-1s" }, wantErr: ErrInvalidValue},
		{name: "valid globs", mutate: func(c *Config) { c.Input.Include = []string{"docs/**/*.md"} }},
		{name: "bad glob", mutate: func(c *Config) { c.Input.Exclude = []string{"[abc"} }, wantErr: ErrInvalidValue},
		{
			name:    "glob too long",
			mutate:  func(c *Config) { c.Input.Include = []string{strings.Repeat("a", MaxGlobLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output dir too long",
			mutate:  func(c *Config) { c.Output.DefaultDir = strings.Repeat("d", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{name: "extension without name", mutate: func(c *Config) { c.Extensions = []ExtensionConfig{{Name: " "}} }, wantErr: ErrInvalidValue},
		{
			name:    "extension name too long",
			mutate:  func(c *Config) { c.Extensions = []ExtensionConfig{{Name: strings.Repeat("x", MaxExtensionNameLength+1)}} },
			wantErr: ErrFieldTooLong,
		},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "chatty" }},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			switch {
			case strings.HasPrefix(tt.name, "bad log"):
				if err == nil || !strings.Contains(err.Error(), "log.") {
					t.Errorf("Validate() error = %v, want log field error", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
			case err != nil:
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Helpers(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Render.Timeout = "2m"
	cfg.Extensions = []ExtensionConfig{
		{Name: "highlight", Config: map[string]any{"class": "hl"}},
		{Name: "typography"},
	}

	if got := cfg.TimeoutDuration(); got != 2*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 2m", got)
	}
	if got := cfg.ExtensionNames(); len(got) != 2 || got[0] != "highlight" || got[1] != "typography" {
		t.Errorf("ExtensionNames() = %v", got)
	}
	configs := cfg.ExtensionConfigs()
	if configs["highlight"]["class"] != "hl" {
		t.Errorf("ExtensionConfigs() = %v", configs)
	}
	if _, ok := configs["typography"]; ok {
		t.Error("ExtensionConfigs() includes an extension without options")
	}
	if got := DefaultConfig().TimeoutDuration(); got != 0 {
		t.Errorf("unset TimeoutDuration() = %v, want 0", got)
	}
}

// Not parallel: subtests change the working directory.
func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, `input:
  defaultDir: "./docs"
  include: ["**/*.md"]
  exclude: ["drafts/**"]
output:
  defaultDir: "./site"
render:
  engine: goldmark
  safeMode: true
  pdf: true
  timeout: 10s
extensions:
  - name: highlight
    config:
      class: hl
  - name: typography
    config:
      skip: [ellipsis]
log:
  level: debug
  format: json
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "./docs" || cfg.Output.DefaultDir != "./site" {
			t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if len(cfg.Input.Include) != 1 || len(cfg.Input.Exclude) != 1 {
			t.Errorf("globs = %v, %v", cfg.Input.Include, cfg.Input.Exclude)
		}
		if cfg.Render.Engine != EngineGoldmark || !cfg.Render.SafeMode || !cfg.Render.PDF {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if cfg.TimeoutDuration() != 10*time.Second {
			t.Errorf("TimeoutDuration() = %v, want 10s", cfg.TimeoutDuration())
		}
		if len(cfg.Extensions) != 2 || cfg.Extensions[0].Config["class"] != "hl" {
			t.Errorf("Extensions = %+v", cfg.Extensions)
		}
		skip, ok := cfg.Extensions[1].Config["skip"].([]any)
		if !ok || len(skip) != 1 || skip[0] != "ellipsis" {
			t.Errorf("typography skip = %#v", cfg.Extensions[1].Config["skip"])
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v", cfg.Log)
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, "render:\n  safeMode: true\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Render.Engine != EngineNative {
			t.Errorf("Render.Engine = %q, want %q", cfg.Render.Engine, EngineNative)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "render:\n  theme: dark\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, "render:\n  engine: pandoc\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("config name resolved in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte("render:\n  pdf: true\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Render.PDF {
			t.Error("Render.PDF = false, want true")
		}
	})

	t.Run("unknown config name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing-config-name.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("site")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the two local candidates", paths)
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("SearchPaths() local candidates = %v, want [site.yaml site.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(filepath.ToSlash(p), AppName+"/site.") {
			t.Errorf("user candidate %q not under %s", p, AppName)
		}
	}
}
