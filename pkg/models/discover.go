// Package models discovers state-model files by directory convention.
//
// A route sees the models in every "models" directory between its component
// and the source root, nearest first. Models directly under the source root
// are global and are discovered separately with DiscoverIn.
package models

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/pkg/routepath"
)

const (
	// DefaultDirName is the conventional name of a state-model directory.
	DefaultDirName = "models"

	// DefaultBoundary is the directory at which ancestor lookup stops.
	DefaultBoundary = "src"

	// DefaultCacheSize bounds the number of directories remembered per Discoverer.
	DefaultCacheSize = 512
)

// DefaultExtensions are the recognized model source extensions.
var DefaultExtensions = []string{"js", "ts"}

// Options configures a Discoverer.
type Options struct {
	// DirName is the models subdirectory name (default "models").
	DirName string

	// Extensions are the file extensions to collect, without dots.
	Extensions []string

	// Boundary is the name of the directory where ancestor lookup stops.
	Boundary string

	// CacheSize bounds the per-directory result cache.
	CacheSize int
}

// Discoverer finds model files. It caches listings, so use one Discoverer
// per generation run.
type Discoverer struct {
	dirName  string
	boundary string
	pattern  string
	cache    *lru.Cache[string, []string]
}

// NewDiscoverer creates a Discoverer, filling unset options with defaults.
func NewDiscoverer(opts Options) *Discoverer {
	if opts.DirName == "" {
		opts.DirName = DefaultDirName
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Boundary == "" {
		opts.Boundary = DefaultBoundary
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}

	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, []string](opts.CacheSize)

	return &Discoverer{
		dirName:  opts.DirName,
		boundary: opts.Boundary,
		pattern:  globPattern(opts.Extensions),
		cache:    cache,
	}
}

// globPattern builds "**/*.{js,ts}" from the extension list.
func globPattern(exts []string) string {
	trimmed := make([]string, 0, len(exts))
	for _, ext := range exts {
		trimmed = append(trimmed, strings.TrimPrefix(ext, "."))
	}
	if len(trimmed) == 1 {
		return "**/*." + trimmed[0]
	}
	return "**/*.{" + strings.Join(trimmed, ",") + "}"
}

// DiscoverIn lists the model files under dir's models subdirectory,
// recursively, as lexically sorted absolute paths. A missing models
// directory yields an empty result, as does a dir that is a regular file.
func (d *Discoverer) DiscoverIn(dir string) ([]string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.New("E130").Wrap(err)
	}
	if cached, ok := d.cache.Get(dir); ok {
		return cached, nil
	}

	modelsDir := filepath.Join(dir, d.dirName)
	info, err := os.Stat(modelsDir)
	if err != nil {
		// A component given as a file path has no models directory beneath it.
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			d.cache.Add(dir, nil)
			return nil, nil
		}
		return nil, errors.New("E130").WithLocation(modelsDir, "").Wrap(err)
	}
	if !info.IsDir() {
		d.cache.Add(dir, nil)
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(modelsDir), d.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.New("E130").WithLocation(modelsDir, "").Wrap(err)
	}
	sort.Strings(matches)

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(modelsDir, filepath.FromSlash(m)))
	}

	d.cache.Add(dir, files)
	return files, nil
}

// DiscoverAncestors collects model files visible from start: the models of
// start itself, then of each parent directory, stopping before the boundary
// directory. Results are ordered nearest directory first.
//
// When start is the boundary, nothing is scanned. The boundary's own models
// are global and must not be collected per route.
func (d *Discoverer) DiscoverAncestors(start string) ([]string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, errors.New("E130").Wrap(err)
	}

	var found []string
	for !routepath.IsBoundary(dir, d.boundary) {
		files, err := d.DiscoverIn(dir)
		if err != nil {
			return nil, err
		}
		found = append(found, files...)

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return found, nil
}
