package hints

// ForBrowserConnect tests are not parallel: they use t.Setenv and
// replace the package-level IsInContainer.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, inContainer bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }
}

func clearBrowserEnv(t *testing.T) {
	t.Helper()
	for _, name := range append(ciVars, "ROD_NO_SANDBOX", "ROD_BROWSER_BIN") {
		t.Setenv(name, "")
	}
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		env         map[string]string
		wantSandbox bool
		wantBin     bool
	}{
		{name: "ci", env: map[string]string{"CI": "true"}, wantSandbox: true, wantBin: true},
		{name: "github actions", env: map[string]string{"GITHUB_ACTIONS": "true"}, wantSandbox: true, wantBin: true},
		{name: "docker", container: true, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", container: true, env: map[string]string{"ROD_NO_SANDBOX": "1"}, wantBin: true},
		{name: "browser bin set", env: map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}},
		{name: "local machine", wantBin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			clearBrowserEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "--pdf") {
				t.Errorf("hint %q should mention dropping --pdf", hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{name: "no paths", paths: nil, contains: "--config", excludes: "create"},
		{
			name:     "user config path suggested",
			paths:    []string{"site.yaml", "/home/u/.config/go-md2html/site.yaml"},
			contains: "or create /home/u/.config/go-md2html/site.yaml",
		},
		{
			name:     "windows path suggested",
			paths:    []string{`C:\Users\u\AppData\Roaming\go-md2html\site.yaml`},
			contains: "or create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("hint = %q, want containing %q", hint, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint = %q, should not contain %q", hint, tt.excludes)
			}
		})
	}
}

func TestForExtensionNotFound(t *testing.T) {
	t.Parallel()

	if got := ForExtensionNotFound(nil); got != "" {
		t.Errorf("ForExtensionNotFound(nil) = %q, want empty", got)
	}
	got := ForExtensionNotFound([]string{"autolink", "highlight"})
	if want := "\n  hint: available extensions: autolink, highlight"; got != want {
		t.Errorf("ForExtensionNotFound() = %q, want %q", got, want)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hint     string
		contains string
	}{
		{name: "timeout", hint: ForTimeout(), contains: "--timeout"},
		{name: "output directory", hint: ForOutputDirectory(), contains: "writable"},
		{name: "undecodable", hint: ForUndecodable(), contains: "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.contains) {
				t.Errorf("hint %q should contain %q", tt.hint, tt.contains)
			}
		})
	}
}
