// Package templates holds the text templates routegen renders: the routing
// bootstrap module written on every run, and the project scaffolds used by
// routegen init.
//
// # Bootstrap
//
// RenderBootstrap fills two insertion points from BootstrapData: the import
// statements for global state modules and their app.model registrations.
// Everything else in the module is fixed.
//
// # Scaffolds
//
//   - json: route tree in config/route-config.json
//   - yaml: route tree in config/route-config.yaml
//
// Scaffold files support one variable:
//
//	{{.ProjectName}}     - Name of the project
package templates
