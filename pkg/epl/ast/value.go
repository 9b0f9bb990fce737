package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind classifies a renderable binding value. EPL bindings form a closed
// variant: string, number, boolean, ordered sequence, or mapping.
type ValueKind string

const (
	ValueString  ValueKind = "string"
	ValueNumber  ValueKind = "number"
	ValueBoolean ValueKind = "boolean"
	ValueList    ValueKind = "list"
	ValueMap     ValueKind = "map"
)

// KindOf classifies a binding value, returning an error for values outside the
// closed renderable variant.
func KindOf(v any) (ValueKind, error) {
	switch v.(type) {
	case string:
		return ValueString, nil
	case bool:
		return ValueBoolean, nil
	case int, int32, int64, float32, float64:
		return ValueNumber, nil
	case []any:
		return ValueList, nil
	case map[string]any:
		return ValueMap, nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// Canonical produces a deterministic, order-stable serialization of a renderable
// value. Map keys are sorted, so two structurally equal values always serialize
// identically. The serialization is the input to content-hash cache keys and must
// stay stable across releases.
func Canonical(v any) (string, error) {
	var sb strings.Builder
	if err := canonicalize(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func canonicalize(sb *strings.Builder, v any) error {
	switch val := v.(type) {
	case string:
		sb.WriteString("s:")
		sb.WriteString(strconv.Quote(val))
	case bool:
		sb.WriteString("b:")
		sb.WriteString(strconv.FormatBool(val))
	case int:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatInt(val, 10))
	case float32:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case float64:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case []any:
		sb.WriteString("l:[")
		for i, item := range val {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := canonicalize(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("m:{")
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte('=')
			if err := canonicalize(sb, val[k]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

// FormatValue renders a binding value as output text, honoring an advisory type
// hint. Hints never fail resolution; an inapplicable hint falls back to the
// value's natural formatting.
func FormatValue(v any, hint TypeHint) string {
	switch hint {
	case HintNumber:
		switch n := v.(type) {
		case int:
			return strconv.FormatInt(int64(n), 10)
		case int64:
			return strconv.FormatInt(n, 10)
		case float64:
			return strconv.FormatFloat(n, 'g', -1, 64)
		}
	case HintBoolean:
		if b, ok := v.(bool); ok {
			return strconv.FormatBool(b)
		}
	}

	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
