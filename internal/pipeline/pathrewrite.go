package pipeline

import (
	"errors"
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths turns relative img[src] and a[href] values into
// file:// URLs under sourceDir, so a browser loading the document from a
// temp file still finds local resources. Paths escaping sourceDir, anchors,
// URLs and absolute paths are left alone. An empty sourceDir is a no-op.
//
// The document is rewritten token by token and untouched markup is copied
// byte for byte. Re-parsing into a tree would reshape the self-closing
// anchors the native engine emits.
func RewriteRelativePaths(doc, sourceDir string) (string, error) {
	if sourceDir == "" {
		return doc, nil
	}
	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(doc))
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return out.String(), nil
			}
			return "", z.Err()
		}
		raw := z.Raw()
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.Write(raw)
			continue
		}
		tok := z.Token()
		if !rewriteToken(&tok, absDir) {
			out.Write(raw)
			continue
		}
		out.WriteString(tok.String())
	}
}

// rewriteToken rewrites the path attribute of img and a tokens and reports
// whether anything changed.
func rewriteToken(tok *html.Token, dir string) bool {
	var key string
	switch tok.DataAtom {
	case atom.Img:
		key = "src"
	case atom.A:
		key = "href"
	default:
		return false
	}

	changed := false
	for i, attr := range tok.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		abs := filepath.Join(dir, attr.Val)
		if !isPathUnderDir(abs, dir) {
			continue
		}
		tok.Attr[i].Val = pathToFileURL(abs)
		changed = true
	}
	return changed
}

// urlScheme matches a leading URL scheme such as http: or data:.
var urlScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// isRelativePath reports whether path is a relative filesystem path.
func isRelativePath(path string) bool {
	switch {
	case path == "",
		strings.HasPrefix(path, "#"),
		strings.HasPrefix(path, "//"),
		urlScheme.MatchString(path):
		return false
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks that absPath stays inside dir.
func isPathUnderDir(absPath, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(absPath))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
