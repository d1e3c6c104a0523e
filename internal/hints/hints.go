// Package hints builds actionable suffixes for CLI error messages.
// Every hint renders as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are set by common CI providers.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect suggests sandbox and binary overrides when PDF export
// cannot start Chrome.
func ForBrowserConnect() string {
	var parts []string

	inCI := false
	for _, name := range ciVars {
		if os.Getenv(name) != "" {
			inCI = true
			break
		}
	}

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	parts = append(parts, "or drop --pdf to write HTML only")

	return join(parts)
}

// ForTimeout suggests a longer PDF timeout.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound suggests --config, or the user config path that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "go-md2html/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory is appended when the output directory cannot be created.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForExtensionNotFound lists the extensions that can be enabled.
func ForExtensionNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available extensions: " + strings.Join(available, ", "))
}

// ForUndecodable is appended when no supported encoding reads the input.
func ForUndecodable() string {
	return format("save the file as UTF-8 (GBK, Big5, EUC-JP, EUC-KR and UTF-16/32 are also detected)")
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func join(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return format(strings.Join(parts, "; "))
}
