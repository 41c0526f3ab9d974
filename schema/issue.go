package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/karstenskyt/osti/i18n"
)

// NewIssue builds an Issue at path with a localized message derived from the
// code and params.
func NewIssue(path, code string, params map[string]any) Issue {
	if path == "" {
		path = "/"
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, stringParams(params)), Params: params}
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = describe(v)
	}
	return out
}

func describe(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []string:
		return "[" + strings.Join(x, ", ") + "]"
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = fmt.Sprint(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "object{" + strings.Join(keys, ",") + "}"
	default:
		return fmt.Sprint(v)
	}
}

// TypeMismatch reports a value of the wrong JSON type.
func TypeMismatch(path, expected string, got any) Issue {
	return NewIssue(path, CodeTypeMismatch, map[string]any{"expected": expected, "got": KindOf(got)})
}

// KindOf names the JSON type of an untyped value.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		if IsNumber(v) {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}
