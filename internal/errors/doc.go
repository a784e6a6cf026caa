// Package errors provides structured, actionable error messages for routegen.
//
// Every failure the generator can report has a registered code that maps to
// a short message, a longer explanation, and whether the failure is
// recoverable. Recoverable failures (the output directory could not be
// recreated, a file could not be written) leave the inputs untouched and may
// succeed on the next run; everything else needs a change to the project.
//
// # Error Categories
//
//   - config: routegen.json and environment overrides
//   - routes: the route tree file and its nodes
//   - discovery: state-module lookup on disk
//   - codegen: rendering the generated modules
//   - output: recreating the output directory and writing files
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("E120").
//	    WithLocation("config/route-config.json", "routes[0].routes[2]").
//	    WithSuggestion("Remove either 'component' or 'to'")
//
//	fmt.Println(err.Format())
//
// Causes attached with Wrap carry a stack trace through
// github.com/cockroachdb/errors, and the package re-exports Is, As and Wrapf
// so callers need a single errors import.
package errors
