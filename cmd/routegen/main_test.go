package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/routegen/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInitThenGen(t *testing.T) {
	for _, tmpl := range []string{"json", "yaml"} {
		t.Run(tmpl, func(t *testing.T) {
			dir := t.TempDir()

			out, err := execute(t, "init", "-C", dir, "--template", tmpl)
			require.NoError(t, err)
			assert.Contains(t, out, "src/pages/home/index.js")

			out, err = execute(t, "gen", "-C", dir, "--log-level", "error")
			require.NoError(t, err)
			assert.Contains(t, out, "Generated 3 routes")

			manifest, err := os.ReadFile(filepath.Join(dir, "src", ".generated", "route-config.js"))
			require.NoError(t, err)
			assert.Contains(t, string(manifest), `import(/* webpackChunkName: "pages" */'../pages/home/index')`)
			assert.Contains(t, string(manifest), `import(/* webpackChunkName: "models" */'../pages/home/models/home.js')`)

			bootstrap, err := os.ReadFile(filepath.Join(dir, "src", ".generated", "router.js"))
			require.NoError(t, err)
			assert.Contains(t, string(bootstrap), "import global0 from '../models/app.js';")
		})
	}
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "init", "-C", dir)
	require.NoError(t, err)

	_, err = execute(t, "init", "-C", dir)
	require.Error(t, err)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "E170", e.Code)
}

func TestInitUnknownTemplate(t *testing.T) {
	_, err := execute(t, "init", "-C", t.TempDir(), "--template", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `template "xml" not found`)
}

func TestGenMissingRouteTree(t *testing.T) {
	_, err := execute(t, "gen", "-C", t.TempDir())
	require.Error(t, err)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "E110", e.Code)
}

func TestGenInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "init", "-C", dir)
	require.NoError(t, err)

	_, err = execute(t, "gen", "-C", dir, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E101")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "routegen dev")
	assert.Contains(t, out, "Go version:")
}
