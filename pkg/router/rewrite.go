package router

import (
	"path/filepath"
	"strconv"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/pkg/routepath"
)

// ModelFinder lists the state modules visible from a component path.
type ModelFinder interface {
	DiscoverAncestors(start string) ([]string, error)
}

// Rewriter resolves component paths and attaches state modules to a route tree.
type Rewriter struct {
	pagesDir  string
	outputDir string
	finder    ModelFinder
	chunks    ChunkNames
}

// NewRewriter creates a Rewriter. Components resolve against pagesDir and
// specifiers are computed relative to outputDir.
func NewRewriter(pagesDir, outputDir string, finder ModelFinder, chunks ChunkNames) *Rewriter {
	if chunks.Pages == "" {
		chunks.Pages = ChunkPages
	}
	if chunks.Models == "" {
		chunks.Models = ChunkModels
	}
	return &Rewriter{
		pagesDir:  filepath.Clean(pagesDir),
		outputDir: filepath.Clean(outputDir),
		finder:    finder,
		chunks:    chunks,
	}
}

// Rewrite returns a rewritten copy of nodes. The input is not modified.
//
// Component files are not checked for existence; a missing component
// surfaces when the bundler resolves the generated import.
func (r *Rewriter) Rewrite(nodes []RouteNode) ([]Route, error) {
	return r.rewrite(nodes, KeyRoutes)
}

func (r *Rewriter) rewrite(nodes []RouteNode, at string) ([]Route, error) {
	if nodes == nil {
		return nil, nil
	}
	routes := make([]Route, 0, len(nodes))
	for i, node := range nodes {
		loc := at + "[" + strconv.Itoa(i) + "]"
		route := Route{
			Path:     node.Path,
			Redirect: node.Redirect,
			Extra:    copyExtra(node.Extra),
		}

		if node.Component != "" {
			if err := r.resolve(&route, node.Component, loc); err != nil {
				return nil, err
			}
		}

		children, err := r.rewrite(node.Routes, loc+"."+KeyRoutes)
		if err != nil {
			return nil, err
		}
		route.Routes = children
		routes = append(routes, route)
	}
	return routes, nil
}

func (r *Rewriter) resolve(route *Route, component, loc string) error {
	abs := component
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.pagesDir, filepath.FromSlash(component))
	}
	abs = filepath.Clean(abs)

	ref, err := r.moduleRef(abs, r.chunks.Pages)
	if err != nil {
		return errors.New("E121").WithLocation("", loc+"."+KeyComponent).Wrap(err)
	}
	route.Component = &ref

	files, err := r.finder.DiscoverAncestors(abs)
	if err != nil {
		return errors.Wrapf(err, "route %q", route.Path)
	}
	route.Models = make([]ModuleRef, 0, len(files))
	for _, f := range files {
		m, err := r.moduleRef(f, r.chunks.Models)
		if err != nil {
			return errors.New("E130").WithLocation(f, loc).Wrap(err)
		}
		route.Models = append(route.Models, m)
	}
	return nil
}

func (r *Rewriter) moduleRef(abs, chunk string) (ModuleRef, error) {
	spec, err := routepath.Specifier(r.outputDir, abs)
	if err != nil {
		return ModuleRef{}, err
	}
	return ModuleRef{Abs: abs, Specifier: spec, Chunk: chunk}, nil
}

// copyExtra deep-copies decoded values so the rewritten tree never aliases
// the caller's maps and slices.
func copyExtra(extra map[string]any) map[string]any {
	if extra == nil {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyExtra(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
