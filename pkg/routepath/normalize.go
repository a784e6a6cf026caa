// Package routepath normalizes filesystem paths for use as JavaScript module
// specifiers and detects the directory at which state-module lookup stops.
package routepath

import (
	"path/filepath"
	"strings"
)

// extendedLengthPrefix marks a Windows extended-length path (\\?\C:\...).
// Such paths must keep their backslashes.
const extendedLengthPrefix = `\\?\`

// Normalize replaces backslash separators with forward slashes.
//
// Extended-length paths and paths containing characters above U+0080 are
// returned unchanged: rewriting them naively can corrupt them.
func Normalize(path string) string {
	if strings.HasPrefix(path, extendedLengthPrefix) || hasNonASCII(path) {
		return path
	}
	return strings.ReplaceAll(path, `\`, "/")
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > 0x80 {
			return true
		}
	}
	return false
}

// IsBoundary reports whether the last segment of path is name.
//
// The segment must be preceded by a separator and may be followed by one
// trailing separator, so "/app/src" and "/app/src/" match "src" while
// "/app/mysrc" and "src" do not.
func IsBoundary(path, name string) bool {
	if name == "" {
		return false
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		path = path[:len(path)-1]
	}
	if !strings.HasSuffix(path, name) {
		return false
	}
	rest := path[:len(path)-len(name)]
	return strings.HasSuffix(rest, "/") || strings.HasSuffix(rest, `\`)
}

// Specifier returns the module specifier that imports target from a module
// located in fromDir.
//
// The result uses forward slashes. A path that does not already start with
// "." gets a "./" prefix; bundlers resolve bare specifiers as packages.
func Specifier(fromDir, target string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", err
	}
	rel = Normalize(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel, nil
}
