package search

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Hit is one raw document returned by the index.
type Hit struct {
	Document map[string]any
	Snippet  string
}

// Serialize renders a hit with exactly the declared fields. Missing values
// are null. The result marshals with keys in name order.
func Serialize(hit Hit, fields []Field) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.Name == snippetField {
			out[f.Name] = hit.Snippet
			continue
		}
		out[f.Name] = coerce(hit.Document[f.Name], f.Kind)
	}
	return out
}

func coerce(v any, kind Kind) any {
	if v == nil {
		return nil
	}

	switch kind {
	case KindBoolean:
		switch b := v.(type) {
		case bool:
			return b
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil
			}
			return parsed
		}
		return nil
	case KindInteger:
		if n, ok := toFloat(v); ok {
			return int64(n)
		}
		return nil
	case KindFloat:
		if n, ok := toFloat(v); ok {
			return n
		}
		return nil
	case KindDatetime:
		if n, ok := toFloat(v); ok {
			return time.Unix(int64(n), 0).UTC().Format(time.RFC3339)
		}
		if s, ok := v.(string); ok {
			return s
		}
		return nil
	case KindList:
		if list, ok := v.([]any); ok {
			return list
		}
		return []any{v}
	default:
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
