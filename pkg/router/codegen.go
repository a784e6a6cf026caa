package router

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/templates"
	"github.com/vango-dev/routegen/pkg/jsast"
)

const (
	// DefaultChunkComment is the magic comment key read by webpack.
	DefaultChunkComment = "webpackChunkName"

	// DefaultConfigModule is the specifier the bootstrap uses to import the manifest.
	DefaultConfigModule = "./route-config"

	configHeader = "/** This file is generated by routegen. DO NOT EDIT. */\n"
)

// GeneratorOptions configures code generation.
type GeneratorOptions struct {
	// ChunkComment is the magic comment key for dynamic imports.
	ChunkComment string

	// ConfigModule is the specifier of the manifest, relative to the bootstrap module.
	ConfigModule string
}

// Generator renders the route manifest and the bootstrap module.
type Generator struct {
	routes  []Route
	globals []ModuleRef
	opts    GeneratorOptions
}

// NewGenerator creates a generator for a rewritten route tree and the
// global state modules.
func NewGenerator(routes []Route, globals []ModuleRef, opts GeneratorOptions) *Generator {
	if opts.ChunkComment == "" {
		opts.ChunkComment = DefaultChunkComment
	}
	if opts.ConfigModule == "" {
		opts.ConfigModule = DefaultConfigModule
	}
	return &Generator{routes: routes, globals: globals, opts: opts}
}

// GenerateConfig renders the route manifest module. The output is
// deterministic for a given tree.
func (g *Generator) GenerateConfig() ([]byte, error) {
	tree, err := g.routesExpr(g.routes, KeyRoutes)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(configHeader)
	b.WriteString("const config = ")
	b.WriteString(jsast.Print(tree))
	b.WriteString(";\nexport default config;\n")
	return []byte(b.String()), nil
}

// GenerateBootstrap renders the routing bootstrap module, importing and
// registering each global state module once.
func (g *Generator) GenerateBootstrap() ([]byte, error) {
	data := templates.BootstrapData{
		ConfigModule: g.opts.ConfigModule,
		Globals:      make([]templates.GlobalModel, 0, len(g.globals)),
	}
	for i, m := range g.globals {
		data.Globals = append(data.Globals, templates.GlobalModel{
			Ident:     "global" + strconv.Itoa(i),
			Specifier: m.Specifier,
		})
	}
	return templates.RenderBootstrap(data)
}

func (g *Generator) routesExpr(routes []Route, at string) (jsast.Array, error) {
	arr := make(jsast.Array, 0, len(routes))
	for i, r := range routes {
		obj, err := g.routeExpr(r, at+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
	return arr, nil
}

// routeExpr renders one route. Keys are emitted in a fixed order: path,
// component, models, to, extra keys sorted, routes.
func (g *Generator) routeExpr(r Route, at string) (jsast.Object, error) {
	obj := jsast.Object{{Key: KeyPath, Value: jsast.String(r.Path)}}

	if r.Component != nil {
		obj = append(obj,
			jsast.Property{Key: KeyComponent, Value: jsast.Arrow{Body: g.importExpr(*r.Component)}},
			jsast.Property{Key: KeyModels, Value: g.modelsExpr(r.Models)},
		)
	}
	if r.Redirect != "" {
		obj = append(obj, jsast.Property{Key: KeyRedirect, Value: jsast.String(r.Redirect)})
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		if k == KeyModels && r.Component != nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := jsast.ValueOf(r.Extra[k])
		if err != nil {
			return nil, errors.New("E140").WithLocation("", at+"."+k).Wrap(err)
		}
		obj = append(obj, jsast.Property{Key: k, Value: v})
	}

	if r.Routes != nil {
		children, err := g.routesExpr(r.Routes, at+"."+KeyRoutes)
		if err != nil {
			return nil, err
		}
		obj = append(obj, jsast.Property{Key: KeyRoutes, Value: children})
	}
	return obj, nil
}

// modelsExpr renders the scoping function: () => [import(...), ...].
func (g *Generator) modelsExpr(models []ModuleRef) jsast.Arrow {
	arr := make(jsast.Array, 0, len(models))
	for _, m := range models {
		arr = append(arr, g.importExpr(m))
	}
	return jsast.Arrow{Body: arr}
}

func (g *Generator) importExpr(m ModuleRef) jsast.Import {
	return jsast.Import{Comment: g.opts.ChunkComment, Chunk: m.Chunk, Specifier: m.Specifier}
}
