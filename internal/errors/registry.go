package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category    Category
	Message     string
	Detail      string
	Recoverable bool
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "routegen could not read or parse its configuration file.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is empty or out of range.",
	},

	// ============================================
	// Route Tree Errors (E110-E129)
	// ============================================

	"E110": {
		Category: CategoryRoutes,
		Message:  "Route config not found",
		Detail:   "The route tree file does not exist.",
	},
	"E111": {
		Category: CategoryRoutes,
		Message:  "Route config parse failed",
		Detail:   "The route tree file is not valid for its format.",
	},
	"E112": {
		Category: CategoryRoutes,
		Message:  "Unsupported route config format",
		Detail:   "Route trees can be written as .json, .yaml, .yml or .toml.",
	},
	"E120": {
		Category: CategoryRoutes,
		Message:  "Route declares both component and redirect",
		Detail:   "A route renders a component or redirects, never both.",
	},
	"E121": {
		Category: CategoryRoutes,
		Message:  "Invalid route field",
		Detail:   "A route field has the wrong type.",
	},

	// ============================================
	// Discovery Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryDiscovery,
		Message:  "State module discovery failed",
		Detail:   "A models directory could not be listed.",
	},

	// ============================================
	// Codegen Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCodegen,
		Message:  "Code generation failed",
		Detail:   "The route manifest or bootstrap module could not be rendered.",
	},

	// ============================================
	// Output Errors (E150-E159)
	// ============================================

	"E150": {
		Category:    CategoryOutput,
		Message:     "Output directory could not be recreated",
		Detail:      "The output directory is removed and recreated on every run. Nothing was written.",
		Recoverable: true,
	},
	"E151": {
		Category:    CategoryOutput,
		Message:     "Generated file could not be written",
		Recoverable: true,
	},

	// ============================================
	// CLI Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Watch failed",
		Detail:   "The file watcher could not be started.",
	},
	"E170": {
		Category: CategoryCLI,
		Message:  "Project already initialized",
		Detail:   "routegen init never overwrites existing files.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
