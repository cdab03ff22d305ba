package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// The plain-structured form of a tree is ordinary JSON: mappings become
// objects with their field order kept, lists become arrays, sequences become
// arrays of single-key objects, literal text becomes a plain string and
// times are written in TimeLayout with a Z suffix.

func (y *Node) MarshalJSON() ([]byte, error) {
	return appendJSON(nil, y)
}

func ToJSON(y *Node) ([]byte, error) {
	return appendJSON(nil, y)
}

func appendJSON(buf []byte, y *Node) ([]byte, error) {
	if y == nil {
		return append(buf, "null"...), nil
	}
	switch y.Type {
	case NullType:
		return append(buf, "null"...), nil
	case StringType, LiteralType:
		return appendJSONString(buf, y.String)
	case IntType:
		return strconv.AppendInt(buf, y.Int, 10), nil
	case FloatType:
		if math.IsNaN(y.Float) || math.IsInf(y.Float, 0) {
			return nil, fmt.Errorf("%w: unsupported float %v", ErrJSON, y.Float)
		}
		return strconv.AppendFloat(buf, y.Float, 'f', -1, 64), nil
	case BoolType:
		return strconv.AppendBool(buf, y.Bool), nil
	case TimeType:
		s, err := FormatTime(y.Time)
		if err != nil {
			return nil, err
		}
		return appendJSONString(buf, s)
	case ArrayType:
		buf = append(buf, '[')
		for i, v := range y.Values {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendJSON(buf, v); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	case ObjectType:
		buf = append(buf, '{')
		for i, v := range y.Values {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendJSONString(buf, y.Fields[i]); err != nil {
				return nil, err
			}
			buf = append(buf, ':')
			if buf, err = appendJSON(buf, v); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	case SequenceType:
		buf = append(buf, '[')
		for i, v := range y.Values {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, '{')
			var err error
			if buf, err = appendJSONString(buf, y.Fields[i]); err != nil {
				return nil, err
			}
			buf = append(buf, ':')
			if buf, err = appendJSON(buf, v); err != nil {
				return nil, err
			}
			buf = append(buf, '}')
		}
		return append(buf, ']'), nil
	default:
		return nil, fmt.Errorf("%w: unknown type %s", ErrJSON, y.Type)
	}
}

func appendJSONString(buf []byte, s string) ([]byte, error) {
	w := bytes.NewBuffer(buf)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	// Encode terminates every value with a newline.
	return bytes.TrimSuffix(w.Bytes(), []byte{'\n'}), nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	res, err := FromJSON(d)
	if err != nil {
		return err
	}
	*y = *res
	return nil
}

// FromJSON decodes JSON into a tree, keeping object field order. Integral
// numbers become IntType, other numbers FloatType.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after value", ErrJSON)
	}
	return res, nil
}

func decodeJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSON, err)
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrJSON, err)
		}
		return FromFloat(f), nil
	case json.Delim:
		switch t {
		case '[':
			res := FromSlice(nil)
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Push(v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrJSON, err)
			}
			return res, nil
		case '{':
			res := NewObject()
			for dec.More() {
				kTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrJSON, err)
				}
				k, ok := kTok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: non-string key %v", ErrJSON, kTok)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Set(k, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrJSON, err)
			}
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrJSON, tok)
}
