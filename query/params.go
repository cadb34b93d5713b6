package query

import (
	"fmt"
	"net/url"
)

// Params holds request parameters keyed by name. Scalar values are stored as one-element slices.
type Params map[string][]string

func FromValues(values url.Values) Params {
	return Params(values)
}

// FromMap adapts a decoded JSON object into Params. Strings become one-element lists, arrays keep their
// order and numbers are formatted, so {"sort": ["a", "b"]} and {"sort": "a,b"} build the same query.
func FromMap(m map[string]any) Params {
	params := make(Params, len(m))
	for key, raw := range m {
		switch v := raw.(type) {
		case string:
			params[key] = []string{v}
		case []string:
			params[key] = append([]string(nil), v...)
		case []any:
			values := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					values = append(values, s)
				} else if item != nil {
					values = append(values, fmt.Sprint(item))
				}
			}
			params[key] = values
		case nil:
		default:
			params[key] = []string{fmt.Sprint(v)}
		}
	}
	return params
}

func (p Params) first(key string) (string, bool) {
	values, ok := p[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
