package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routegen/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNew(t *testing.T) {
	cfg := New("/project")

	assert.Equal(t, DefaultSrc, cfg.Paths.Src)
	assert.Equal(t, DefaultPages, cfg.Paths.Pages)
	assert.Equal(t, DefaultOutput, cfg.Paths.Output)
	assert.Equal(t, DefaultRoutes, cfg.Paths.Routes)
	assert.Equal(t, []string{"js", "ts"}, cfg.Models.Extensions)
	assert.Equal(t, "js", cfg.Output.Extension)
	assert.Equal(t, "webpackChunkName", cfg.Chunks.Comment)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Empty(t, cfg.Path())
	assert.Equal(t, filepath.Join(dir, "src"), cfg.SrcPath())
	assert.Equal(t, filepath.Join(dir, "src", "pages"), cfg.PagesPath())
	assert.Equal(t, filepath.Join(dir, "src", ".generated"), cfg.OutputPath())
	assert.Equal(t, filepath.Join(dir, "config", "route-config.json"), cfg.RoutesPath())
	assert.Equal(t, filepath.Join(dir, "src", "models"), cfg.GlobalModelsDir())
	assert.Equal(t, "src", cfg.BoundaryName())
	assert.Equal(t, "route-config.js", cfg.ConfigFile())
	assert.Equal(t, "router.js", cfg.RouterFile())
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "routegen.json",
			content: `{
  "paths": {"routes": "routes.yaml", "output": "src/.umi"},
  "models": {"extensions": ["ts"]},
  "output": {"extension": ".ts"},
  "watch": {"debounce": "1s"}
}`,
		},
		{
			name: "yaml",
			file: "routegen.yaml",
			content: `paths:
  routes: routes.yaml
  output: src/.umi
models:
  extensions: [ts]
output:
  extension: .ts
watch:
  debounce: 1s
`,
		},
		{
			name: "toml",
			file: "routegen.toml",
			content: `[paths]
routes = "routes.yaml"
output = "src/.umi"

[models]
extensions = ["ts"]

[output]
extension = ".ts"

[watch]
debounce = "1s"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			cfg, err := Load(dir)
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, tt.file), cfg.Path())
			assert.Equal(t, filepath.Join(dir, "routes.yaml"), cfg.RoutesPath())
			assert.Equal(t, filepath.Join(dir, "src", ".umi"), cfg.OutputPath())
			assert.Equal(t, []string{"ts"}, cfg.Models.Extensions)
			assert.Equal(t, "ts", cfg.Output.Extension)
			assert.Equal(t, time.Second, cfg.Watch.Debounce)
			// Unset keys keep their defaults.
			assert.Equal(t, DefaultPages, cfg.Paths.Pages)
			assert.Equal(t, "models", cfg.Chunks.Models)
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "routegen.json"), `{"paths": `)

	_, err := Load(dir)
	require.Error(t, err)

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "E100", e.Code)
	assert.Equal(t, filepath.Join(dir, "routegen.json"), e.Location.File)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "routegen.json"), `{"output": {"extension": "js"}}`)
	t.Setenv("ROUTEGEN_OUTPUT_EXTENSION", "ts")
	t.Setenv("ROUTEGEN_LOG_JSON", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ts", cfg.Output.Extension)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "ROUTEGEN_CHUNKS_PAGES=views\n")
	t.Cleanup(func() { os.Unsetenv("ROUTEGEN_CHUNKS_PAGES") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "views", cfg.Chunks.Pages)
}

func TestFindProjectRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "routegen.yaml"), "paths: {}\n")
	nested := filepath.Join(dir, "src", "pages", "home")
	require.NoError(t, os.MkdirAll(nested, 0755))

	root, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	// Without a configuration file the start directory is the root.
	bare := t.TempDir()
	root, err = FindProjectRoot(bare)
	require.NoError(t, err)
	assert.Equal(t, bare, root)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{
			name:    "empty extensions",
			mutate:  func(c *Config) { c.Models.Extensions = []string{} },
			wantKey: "models.extensions",
		},
		{
			name:    "extension with glob characters",
			mutate:  func(c *Config) { c.Models.Extensions = []string{"{js,ts}"} },
			wantKey: "models.extensions",
		},
		{
			name:    "chunk name with comment terminator",
			mutate:  func(c *Config) { c.Chunks.Pages = "pages*/" },
			wantKey: "chunks.pages",
		},
		{
			name:    "output equals source root",
			mutate:  func(c *Config) { c.Paths.Output = "src" },
			wantKey: "paths.output",
		},
		{
			name:    "output above source root",
			mutate:  func(c *Config) { c.Paths.Output = "." },
			wantKey: "paths.output",
		},
		{
			name:    "output equals pages directory",
			mutate:  func(c *Config) { c.Paths.Output = "src/pages" },
			wantKey: "paths.output",
		},
		{
			name: "output above relocated pages directory",
			mutate: func(c *Config) {
				c.Paths.Pages = "views/pages"
				c.Paths.Output = "views"
			},
			wantKey: "paths.output",
		},
		{
			name:    "output equals global models directory",
			mutate:  func(c *Config) { c.Paths.Output = "src/models" },
			wantKey: "paths.output",
		},
		{
			name:    "output contains route file",
			mutate:  func(c *Config) { c.Paths.Output = "config" },
			wantKey: "paths.output",
		},
		{
			name: "output contains config file",
			mutate: func(c *Config) {
				c.configPath = "/project/settings/routegen.json"
				c.Paths.Output = "settings"
			},
			wantKey: "paths.output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New("/project")
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var e *errors.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "E101", e.Code)
			assert.Equal(t, tt.wantKey, e.Location.Node)
		})
	}

	t.Run("output outside source root", func(t *testing.T) {
		cfg := New("/project")
		cfg.Paths.Output = "build/routes"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("output beside pages with shared prefix", func(t *testing.T) {
		cfg := New("/project")
		cfg.Paths.Output = "src/pages-generated"
		assert.NoError(t, cfg.Validate())
	})
}

func TestAbsolutePaths(t *testing.T) {
	cfg := New("/project")
	cfg.Paths.Routes = "/etc/routes.json"
	assert.Equal(t, "/etc/routes.json", cfg.RoutesPath())
}
