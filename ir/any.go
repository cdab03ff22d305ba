package ir

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
)

// ToAny converts a tree into plain Go values: map[string]any, []any, string,
// int64, float64, bool and nil. Sequences become []any of single-key maps.
// Times and literals become strings. Field order is lost; use ToYAMLValue or
// ToJSON where it matters.
func ToAny(y *Node) (any, error) {
	if y == nil {
		return nil, nil
	}
	switch y.Type {
	case NullType:
		return nil, nil
	case StringType, LiteralType:
		return y.String, nil
	case IntType:
		return y.Int, nil
	case FloatType:
		return y.Float, nil
	case BoolType:
		return y.Bool, nil
	case TimeType:
		return FormatTime(y.Time)
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			a, err := ToAny(v)
			if err != nil {
				return nil, err
			}
			res[i] = a
		}
		return res, nil
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, v := range y.Values {
			a, err := ToAny(v)
			if err != nil {
				return nil, err
			}
			res[y.Fields[i]] = a
		}
		return res, nil
	case SequenceType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			a, err := ToAny(v)
			if err != nil {
				return nil, err
			}
			res[i] = map[string]any{y.Fields[i]: a}
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: unknown type %s", ErrType, y.Type)
}

// FromAny is the inverse of ToAny for the types it produces, plus int,
// float32 and []string. Map keys are sorted since Go maps are unordered.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		if x == float64(int64(x)) {
			return FromInt(int64(x)), nil
		}
		return FromFloat(x), nil
	case []string:
		return FromStrings(x...), nil
	case []any:
		res := FromSlice(make([]*Node, 0, len(x)))
		for _, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res.Push(n)
		}
		return res, nil
	case map[string]any:
		res := NewObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, n)
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T", ErrType, v)
}

// ToYAMLValue converts a tree into values that goccy/go-yaml marshals with
// field order kept.
func ToYAMLValue(y *Node) (any, error) {
	switch y.Type {
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			a, err := ToYAMLValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = a
		}
		return res, nil
	case ObjectType:
		res := make(yaml.MapSlice, len(y.Values))
		for i, v := range y.Values {
			a, err := ToYAMLValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: y.Fields[i], Value: a}
		}
		return res, nil
	case SequenceType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			a, err := ToYAMLValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapSlice{{Key: y.Fields[i], Value: a}}
		}
		return res, nil
	default:
		return ToAny(y)
	}
}

// ToYAML renders the plain-structured form of y as YAML.
func ToYAML(y *Node) ([]byte, error) {
	v, err := ToYAMLValue(y)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}
