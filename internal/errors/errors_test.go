package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		code            string
		wantMsg         string
		wantCat         Category
		wantRecoverable bool
	}{
		{
			name:    "routes error",
			code:    "E120",
			wantMsg: "Route declares both component and redirect",
			wantCat: CategoryRoutes,
		},
		{
			name:            "output error is recoverable",
			code:            "E150",
			wantMsg:         "Output directory could not be recreated",
			wantCat:         CategoryOutput,
			wantRecoverable: true,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.wantCat, err.Category)
			assert.Equal(t, tt.wantRecoverable, err.Recoverable)
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown flag %q", "--x")
	assert.Equal(t, `unknown flag "--x"`, err.Message)
	assert.Equal(t, CategoryCLI, err.Category)
	assert.Empty(t, err.Code)
	assert.Equal(t, `unknown flag "--x"`, err.Error())
}

func TestError_Error(t *testing.T) {
	err := New("E110")
	assert.Equal(t, "E110: Route config not found", err.Error())

	err.Wrap(fs.ErrNotExist)
	assert.Equal(t, "E110: Route config not found: file does not exist", err.Error())
}

func TestError_Wrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New("E151").Wrap(cause)

	require.NotNil(t, err.Wrapped)
	assert.True(t, Is(err, cause))
	assert.True(t, stderrors.Is(err, cause))

	var target *Error
	require.True(t, As(fmt.Errorf("writing: %w", err), &target))
	assert.Equal(t, "E151", target.Code)
}

func TestError_WrapNil(t *testing.T) {
	err := New("E151").Wrap(nil)
	assert.Nil(t, err.Wrapped)
}

func TestError_Builders(t *testing.T) {
	err := New("E120").
		WithLocation("config/route-config.json", "routes[1]").
		WithDetail("route /a declares component and to").
		WithSuggestion("Remove one of them")

	require.NotNil(t, err.Location)
	assert.Equal(t, "config/route-config.json (routes[1])", err.Location.String())
	assert.Equal(t, "route /a declares component and to", err.Detail)
	assert.Equal(t, "Remove one of them", err.Suggestion)
}

func TestLocation_String(t *testing.T) {
	var nilLoc *Location
	assert.Equal(t, "", nilLoc.String())
	assert.Equal(t, "a.json", (&Location{File: "a.json"}).String())
	assert.Equal(t, "a.json (routes[0])", (&Location{File: "a.json", Node: "routes[0]"}).String())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil, "E100"))

	original := New("E120")
	assert.Same(t, original, FromError(fmt.Errorf("ctx: %w", original), "E100"))

	plain := stderrors.New("boom")
	wrapped := FromError(plain, "E130")
	assert.Equal(t, "E130", wrapped.Code)
	assert.True(t, Is(wrapped, plain))
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(New("E150")))
	assert.True(t, IsRecoverable(Wrapf(New("E151"), "writing %s", "router.js")))
	assert.False(t, IsRecoverable(New("E111")))
	assert.False(t, IsRecoverable(stderrors.New("plain")))
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E120").
		WithLocation("config/route-config.json", "routes[0]").
		WithSuggestion("Remove either 'component' or 'to'")

	out := err.Format()
	assert.Contains(t, out, "ERROR E120: Route declares both component and redirect")
	assert.Contains(t, out, "config/route-config.json (routes[0])")
	assert.Contains(t, out, "A route renders a component or redirects, never both.")
	assert.Contains(t, out, "Hint: Remove either 'component' or 'to'")
}

func TestFormatCompact(t *testing.T) {
	err := New("E121").WithLocation("routes.yaml", "routes[2].path")
	assert.Equal(t, "routes.yaml (routes[2].path): E121: Invalid route field", err.FormatCompact())
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, New("E110"))
	assert.Contains(t, buf.String(), "ERROR E110")

	buf.Reset()
	Print(&buf, stderrors.New("plain failure"))
	assert.Contains(t, buf.String(), "ERROR: plain failure")
}

func TestRegistryCodes(t *testing.T) {
	codes := GetAllCodes()
	require.NotEmpty(t, codes)
	for _, code := range codes {
		assert.True(t, strings.HasPrefix(code, "E"), "code %q", code)
		tmpl, ok := GetTemplate(code)
		require.True(t, ok)
		assert.NotEmpty(t, tmpl.Message, "code %s has no message", code)
		assert.NotEmpty(t, tmpl.Category, "code %s has no category", code)
	}

	_, ok := GetTemplate("E999")
	assert.False(t, ok)
}

func TestWrapText(t *testing.T) {
	assert.Nil(t, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 8))
}
