// Package config loads routegen project configuration.
//
// Configuration lives in routegen.json, routegen.yaml or routegen.toml at
// the project root. Every key can be overridden from the environment with
// the ROUTEGEN_ prefix (ROUTEGEN_OUTPUT_EXTENSION=ts), and a .env file in
// the project root is loaded first. Without a configuration file the
// defaults apply:
//
//	{
//	  "paths": {
//	    "src": "src",
//	    "pages": "src/pages",
//	    "output": "src/.generated",
//	    "routes": "config/route-config.json"
//	  },
//	  "models": {"dir": "models", "extensions": ["js", "ts"]},
//	  "output": {"extension": "js"},
//	  "chunks": {"comment": "webpackChunkName", "pages": "pages", "models": "models"},
//	  "watch": {"debounce": "150ms"},
//	  "log": {"level": "info", "json": false}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	fmt.Println("Writing to", cfg.OutputPath())
package config
