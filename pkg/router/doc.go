// Package router rewrites a declarative route tree into a lazily-loaded
// route manifest and renders the routing bootstrap module.
//
// A route tree is a list of nodes:
//
//	[
//	  {"path": "/", "to": "/home"},
//	  {"path": "/home", "component": "home", "routes": [
//	    {"path": "/home/about", "component": "home/about"}
//	  ]}
//	]
//
// # Pipeline
//
// LoadFile decodes the tree from JSON, YAML or TOML. Validate rejects nodes
// that declare both a component and a redirect and reports softer problems
// as warnings. Rewriter.Rewrite resolves every component against the pages
// directory and attaches the state modules visible from it, walking up the
// directory hierarchy until the source root. Generator renders the result:
//
//	routes, _ := router.NewRewriter(pagesDir, outDir, discoverer, router.DefaultChunkNames()).Rewrite(nodes)
//	gen := router.NewGenerator(routes, globals, router.GeneratorOptions{})
//	manifest, _ := gen.GenerateConfig()
//	bootstrap, _ := gen.GenerateBootstrap()
//
// # Emitted references
//
// Components become deferred imports tagged with a chunk name:
//
//	component: () => import(/* webpackChunkName: "pages" */'../pages/home'),
//	models: () => [
//	  import(/* webpackChunkName: "models" */'../pages/home/models/user.js'),
//	],
//
// Any other node key is copied through as data. Strings are always emitted
// as string literals, so a value that looks like code never becomes code.
package router
