package router

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routegen/internal/errors"
)

var wantTree = []RouteNode{
	{Path: "/", Redirect: "/home"},
	{
		Path:      "/home",
		Component: "home/index",
		Routes: []RouteNode{
			{Path: "/home/a", Component: "home/a/index"},
		},
	},
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{"json", `[
			{"path": "/", "to": "/home"},
			{"path": "/home", "component": "home/index", "routes": [
				{"path": "/home/a", "component": "home/a/index"}
			]}
		]`},
		{"json", `{"routes": [
			{"path": "/", "to": "/home"},
			{"path": "/home", "component": "home/index", "routes": [
				{"path": "/home/a", "component": "home/a/index"}
			]}
		]}`},
		{"yaml", `
- path: /
  to: /home
- path: /home
  component: home/index
  routes:
    - path: /home/a
      component: home/a/index
`},
		{"yml", `
routes:
  - path: /
    to: /home
  - path: /home
    component: home/index
    routes:
      - path: /home/a
        component: home/a/index
`},
		{"toml", `
[[routes]]
path = "/"
to = "/home"

[[routes]]
path = "/home"
component = "home/index"

[[routes.routes]]
path = "/home/a"
component = "home/a/index"
`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			nodes, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, wantTree, nodes)
		})
	}
}

func TestParseKeepsExtraFields(t *testing.T) {
	nodes, err := Parse([]byte(`[{"path": "/", "component": "home", "name": "Home", "order": 2, "meta": {"auth": true}}]`), "json")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, map[string]any{
		"name":  "Home",
		"order": json.Number("2"),
		"meta":  map[string]any{"auth": true},
	}, nodes[0].Extra)
}

func TestParseEmptyChildrenStayNonNil(t *testing.T) {
	nodes, err := Parse([]byte(`[{"path": "/", "component": "home", "routes": []}]`), "json")
	require.NoError(t, err)
	require.NotNil(t, nodes[0].Routes)
	assert.Empty(t, nodes[0].Routes)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		data     string
		wantCode string
		wantNode string
	}{
		{"invalid json", "json", `[{`, "E111", ""},
		{"trailing json garbage", "json", `[{"path": "/"}] garbage`, "E111", ""},
		{"second json value", "json", `[] []`, "E111", ""},
		{"invalid yaml", "yaml", "- path: [", "E111", ""},
		{"invalid toml", "toml", "[[routes]\n", "E111", ""},
		{"unknown format", "xml", "<routes/>", "E112", ""},
		{"object without routes", "json", `{"pages": []}`, "E121", "routes"},
		{"routes not a list", "json", `{"routes": {"path": "/"}}`, "E121", "routes"},
		{"node not an object", "json", `["home"]`, "E121", "routes[0]"},
		{"path not a string", "json", `[{"path": 1}]`, "E121", "routes[0].path"},
		{"nested component not a string", "yaml", "- path: /\n  routes:\n    - component: [a]\n", "E121", "routes[0].routes[0].component"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			var e *errors.Error
			require.True(t, errors.As(err, &e), "got %v", err)
			assert.Equal(t, tt.wantCode, e.Code)
			if tt.wantNode != "" {
				require.NotNil(t, e.Location)
				assert.Equal(t, tt.wantNode, e.Location.Node)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- path: /\n  component: home\n"), 0o644))

	nodes, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []RouteNode{{Path: "/", Component: "home"}}, nodes)
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route-config.json")
	_, err := LoadFile(path)

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "E110", e.Code)
	assert.Equal(t, path, e.Location.File)
}

func TestLoadFileReportsFileAndNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"path": "/", "routes": [{"to": false}]}]`), 0o644))

	_, err := LoadFile(path)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "E121", e.Code)
	assert.Equal(t, path, e.Location.File)
	assert.Equal(t, "routes[0].routes[0].to", e.Location.Node)
}
