// Package generate runs routegen's generation pipeline for a project.
//
// A run loads and validates the route tree, rewrites it against the pages
// directory, discovers the global state modules and renders the route
// manifest and bootstrap module in memory. Only then is the output
// directory removed, recreated and written:
//
//	gen := generate.New(cfg, generate.Options{Logger: log})
//	result, err := gen.Run(ctx)
//	if err != nil && result.Status == generate.StatusRecoverable {
//	    // output directory was not writable; input is fine
//	}
//
// Invalid input yields StatusFatal and leaves the previous output in
// place. A failure to recreate the output directory or write a file yields
// StatusRecoverable.
package generate
