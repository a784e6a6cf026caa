// Package watch regenerates routes when project files change.
//
// A Watcher delivers debounced batches of file system events from the
// source tree and the route tree file. A Session reruns generation for
// each batch and reports the outcome to connected dev clients through the
// ReloadServer and to /healthz.
//
// # Usage
//
//	reload := watch.NewReloadServer(log)
//	srv := watch.NewServer(watch.ServerOptions{Addr: ":7357", Reload: reload})
//	session := watch.NewSession(gen, reload, srv, log)
//
//	w := watch.NewWatcher(watch.WatcherConfig{
//	    Paths:   []string{cfg.SrcPath(), cfg.RoutesPath()},
//	    Exclude: []string{cfg.OutputPath()},
//	})
//	w.OnChange(func(changes []watch.Change) {
//	    session.Regenerate(ctx, changes)
//	})
//
// # Reload Protocol
//
// Clients connect to /__routegen/reload via WebSocket. Messages are
// JSON-encoded:
//
//	{"type": "routes", "files": ["..."]}  // generated files were rewritten
//	{"type": "error", "error": "..."}     // the last run failed
//
// The output directory must be excluded from the watch, or every run
// would trigger the next one.
package watch
