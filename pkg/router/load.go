package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routegen/internal/errors"
)

// LoadFile reads a route tree from a .json, .yaml, .yml or .toml file.
//
// JSON and YAML files hold either a list of routes or an object with a
// "routes" list. TOML files use [[routes]] tables.
func LoadFile(path string) ([]RouteNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E110").
				WithLocation(path, "").
				WithSuggestion("Create the route tree file or set paths.routes in routegen.json")
		}
		return nil, errors.New("E111").WithLocation(path, "").Wrap(err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	nodes, err := Parse(data, format)
	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) && e.Location != nil {
			e.Location.File = path
			return nil, e
		}
		return nil, errors.FromError(err, "E111").WithLocation(path, "")
	}
	return nodes, nil
}

// Parse decodes a route tree in the given format ("json", "yaml", "yml" or "toml").
func Parse(data []byte, format string) ([]RouteNode, error) {
	var raw any
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.New("E111").Wrap(err)
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return nil, errors.New("E111").WithDetail("Unexpected data after the route tree.").Wrap(err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.New("E111").Wrap(err)
		}
	case "toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.New("E111").Wrap(err)
		}
		raw = doc
	default:
		return nil, errors.New("E112").WithDetail(fmt.Sprintf("Unsupported format %q.", format))
	}

	raw = normalizeValue(raw)
	if doc, ok := raw.(map[string]any); ok {
		list, present := doc[KeyRoutes]
		if !present {
			return nil, errors.New("E121").
				WithLocation("", KeyRoutes).
				WithDetail("The route tree object has no \"routes\" list.")
		}
		raw = list
	}
	if raw == nil {
		return nil, nil
	}
	return decodeNodes(raw, KeyRoutes)
}

func decodeNodes(raw any, at string) ([]RouteNode, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fieldError(at, "must be a list of routes, got %s", typeName(raw))
	}
	nodes := make([]RouteNode, 0, len(list))
	for i, item := range list {
		node, err := decodeNode(item, fmt.Sprintf("%s[%d]", at, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(raw any, at string) (RouteNode, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return RouteNode{}, fieldError(at, "must be an object, got %s", typeName(raw))
	}

	var node RouteNode
	for key, value := range fields {
		var err error
		switch key {
		case KeyPath:
			node.Path, err = stringField(value, at+"."+key)
		case KeyComponent:
			node.Component, err = stringField(value, at+"."+key)
		case KeyRedirect:
			node.Redirect, err = stringField(value, at+"."+key)
		case KeyRoutes:
			if value != nil {
				node.Routes, err = decodeNodes(value, at+"."+key)
			}
		default:
			if node.Extra == nil {
				node.Extra = make(map[string]any)
			}
			node.Extra[key] = value
		}
		if err != nil {
			return RouteNode{}, err
		}
	}
	return node, nil
}

func stringField(value any, at string) (string, error) {
	if value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fieldError(at, "must be a string, got %s", typeName(value))
	}
	return s, nil
}

// normalizeValue converts decoder-specific containers (yaml's map[any]any
// for non-string keys, toml's []map[string]any) into []any and map[string]any.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, normalizeValue(item))
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, normalizeValue(item))
		}
		return out
	default:
		return v
	}
}

func fieldError(at, format string, args ...any) error {
	return errors.New("E121").
		WithLocation("", at).
		WithDetail(at + " " + fmt.Sprintf(format, args...))
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}
