package router

import (
	"fmt"

	"github.com/vango-dev/routegen/internal/errors"
)

// WarningType categorizes validation warnings.
type WarningType string

const (
	// WarnDuplicatePath indicates siblings sharing a path. Only the first
	// one can ever match.
	WarnDuplicatePath WarningType = "DUPLICATE_PATH"

	// WarnRedirectChildren indicates a redirect with nested routes. The
	// children are kept in the manifest but the router never renders them.
	WarnRedirectChildren WarningType = "REDIRECT_CHILDREN"

	// WarnEmptyRoute indicates a node with no component, redirect or children.
	WarnEmptyRoute WarningType = "EMPTY_ROUTE"
)

// Warning is a non-fatal problem in the route tree.
type Warning struct {
	Type WarningType

	// Node locates the route, e.g. "routes[0].routes[1]".
	Node string

	// Path is the route's URL pattern.
	Path string

	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s (%s): %s", w.Type, w.Node, w.Path, w.Message)
}

// Validate checks the route tree. Nodes declaring both a component and a
// redirect are an error; other problems are reported as warnings.
func Validate(nodes []RouteNode) ([]Warning, error) {
	v := &validator{}
	if err := v.walk(nodes, KeyRoutes); err != nil {
		return nil, err
	}
	return v.warnings, nil
}

type validator struct {
	warnings []Warning
}

func (v *validator) walk(nodes []RouteNode, at string) error {
	seen := make(map[string]string, len(nodes))
	for i, node := range nodes {
		loc := fmt.Sprintf("%s[%d]", at, i)

		if node.Component != "" && node.Redirect != "" {
			return errors.New("E120").
				WithLocation("", loc).
				WithDetail(fmt.Sprintf("Route %q declares component %q and redirect %q.", node.Path, node.Component, node.Redirect)).
				WithSuggestion("Remove either 'component' or 'to'")
		}

		if first, dup := seen[node.Path]; dup {
			v.add(WarnDuplicatePath, loc, node.Path, "shadowed by "+first)
		} else {
			seen[node.Path] = loc
		}

		switch {
		case node.Redirect != "" && len(node.Routes) > 0:
			v.add(WarnRedirectChildren, loc, node.Path, "nested routes of a redirect are never rendered")
		case node.Component == "" && node.Redirect == "" && len(node.Routes) == 0:
			v.add(WarnEmptyRoute, loc, node.Path, "route has no component, redirect or children")
		}

		if err := v.walk(node.Routes, loc+"."+KeyRoutes); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) add(typ WarningType, node, path, msg string) {
	v.warnings = append(v.warnings, Warning{Type: typ, Node: node, Path: path, Message: msg})
}
