// Package jsast models the small subset of JavaScript expressions routegen
// emits and prints them deterministically.
//
// Data and code are distinct node types. A String is always printed as an
// escaped string literal, even when its contents look like code; only Arrow
// and Import produce executable fragments.
package jsast

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Expr is a JavaScript expression.
type Expr interface {
	print(p *printer)
}

// String is a string literal.
type String string

// Number is a numeric literal in its JavaScript source form.
type Number string

// Bool is a boolean literal.
type Bool bool

// Null is the null literal.
type Null struct{}

// Array is an array literal.
type Array []Expr

// Property is one key/value pair of an Object.
type Property struct {
	Key   string
	Value Expr
}

// Object is an object literal with ordered properties.
type Object []Property

// Arrow is a zero-argument arrow function returning Body.
type Arrow struct {
	Body Expr
}

// Import is a dynamic import with a bundler magic comment:
//
//	import(/* webpackChunkName: "pages" */'../pages/home/index')
type Import struct {
	// Comment is the magic comment key, e.g. "webpackChunkName".
	// No comment is emitted when Comment or Chunk is empty.
	Comment string

	// Chunk is the bundling group the module is placed in.
	Chunk string

	// Specifier is the module path.
	Specifier string
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsIdentifier reports whether s can be used as a bare property key.
func IsIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// ValueOf converts a decoded JSON, YAML or TOML value into an expression.
// Map keys are sorted so the output does not depend on decoder iteration order.
func ValueOf(v any) (Expr, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Number(strconv.Itoa(val)), nil
	case int64:
		return Number(strconv.FormatInt(val, 10)), nil
	case uint64:
		return Number(strconv.FormatUint(val, 10)), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("jsast: unsupported number %v", val)
		}
		return Number(strconv.FormatFloat(val, 'g', -1, 64)), nil
	case json.Number:
		return Number(val.String()), nil
	case time.Time:
		return String(val.Format(time.RFC3339Nano)), nil
	case []any:
		arr := make(Array, 0, len(val))
		for i, item := range val {
			e, err := ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr = append(arr, e)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(Object, 0, len(val))
		for _, k := range keys {
			e, err := ValueOf(val[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj = append(obj, Property{Key: k, Value: e})
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("jsast: unsupported value of type %T", v)
	}
}
