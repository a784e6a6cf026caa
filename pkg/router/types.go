package router

// Field names of a route node in the route tree file and in the generated
// manifest.
const (
	KeyPath      = "path"
	KeyComponent = "component"
	KeyModels    = "models"
	KeyRedirect  = "to"
	KeyRoutes    = "routes"
)

// Default bundling groups for deferred-load references.
const (
	ChunkPages  = "pages"
	ChunkModels = "models"
)

// RouteNode is one declared route, as read from the route tree file.
type RouteNode struct {
	// Path is the URL pattern (e.g., "/users/:id").
	Path string

	// Component is the component module, relative to the pages directory.
	Component string

	// Redirect is the redirect target (the "to" key).
	Redirect string

	// Routes are nested child routes.
	Routes []RouteNode

	// Extra holds every other key of the node. It is emitted unchanged.
	Extra map[string]any
}

// ModuleRef is a module referenced from the generated code.
type ModuleRef struct {
	// Abs is the absolute filesystem path of the module.
	Abs string

	// Specifier is the import path relative to the output directory.
	Specifier string

	// Chunk is the bundling group for deferred loads. Empty for static imports.
	Chunk string
}

// Route is a rewritten RouteNode with resolved module references.
// It shares no mutable state with the RouteNode it was built from.
type Route struct {
	Path string

	// Component is the deferred-load reference to the page component.
	// Nil for redirect-only and container nodes.
	Component *ModuleRef

	// Models are the state modules visible to the route, nearest directory first.
	Models []ModuleRef

	Redirect string
	Routes   []Route
	Extra    map[string]any
}

// ChunkNames are the bundling groups used for deferred-load references.
type ChunkNames struct {
	Pages  string
	Models string
}

// DefaultChunkNames returns the "pages"/"models" groups.
func DefaultChunkNames() ChunkNames {
	return ChunkNames{Pages: ChunkPages, Models: ChunkModels}
}

// CountRoutes returns the number of routes in the tree, children included.
func CountRoutes(routes []Route) int {
	n := 0
	for _, r := range routes {
		n += 1 + CountRoutes(r.Routes)
	}
	return n
}

// CountModelRefs returns the number of per-route model references in the tree.
func CountModelRefs(routes []Route) int {
	n := 0
	for _, r := range routes {
		n += len(r.Models) + CountModelRefs(r.Routes)
	}
	return n
}
