package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/routegen/internal/errors"
)

// Config contains scaffold template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string
}

// Template represents a project scaffold.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of slash-separated relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"json": jsonTemplate(),
	"yaml": yamlTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "template %q not found", name).
			WithSuggestion("Available templates: json, yaml")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the template's relative file paths, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create writes the template's files under dir. It refuses to run when any
// of the files already exists, so nothing is ever overwritten.
func (t *Template) Create(dir string, cfg Config) error {
	for _, relPath := range t.Paths() {
		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if _, err := os.Stat(fullPath); err == nil {
			return errors.New("E170").
				WithLocation(fullPath, "").
				WithSuggestion("Remove the file or run routegen gen against the existing project")
		}
	}

	for _, relPath := range t.Paths() {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return errors.New("E151").Wrap(err)
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return errors.New("E151").Wrap(err)
		}
	}

	return nil
}

// sourceFiles are shared by every scaffold.
func sourceFiles() map[string]string {
	return map[string]string{
		"src/pages/home/index.js": `import React from 'react'

export default function Home({ children }) {
  return (
    <div>
      <h1>{{.ProjectName}}</h1>
      {children}
    </div>
  )
}
`,
		"src/pages/home/models/home.js": `export default {
  namespace: 'home',
  state: {},
  reducers: {},
}
`,
		"src/pages/home/about/index.js": `import React from 'react'

export default function About() {
  return <p>About {{.ProjectName}}</p>
}
`,
		"src/models/app.js": `export default {
  namespace: 'app',
  state: {},
  reducers: {},
}
`,
	}
}

// jsonTemplate returns the scaffold with a JSON route tree.
func jsonTemplate() *Template {
	files := sourceFiles()
	files["routegen.json"] = `{
  "paths": {
    "routes": "config/route-config.json"
  }
}
`
	files["config/route-config.json"] = `[
  { "path": "/", "to": "/home" },
  {
    "path": "/home",
    "component": "home/index",
    "routes": [
      { "path": "/home/about", "component": "home/about/index" }
    ]
  }
]
`
	return &Template{
		Name:        "json",
		Description: "Route tree in config/route-config.json",
		Files:       files,
	}
}

// yamlTemplate returns the scaffold with a YAML route tree.
func yamlTemplate() *Template {
	files := sourceFiles()
	files["routegen.yaml"] = `paths:
  routes: config/route-config.yaml
`
	files["config/route-config.yaml"] = `routes:
  - path: /
    to: /home
  - path: /home
    component: home/index
    routes:
      - path: /home/about
        component: home/about/index
`
	return &Template{
		Name:        "yaml",
		Description: "Route tree in config/route-config.yaml",
		Files:       files,
	}
}
