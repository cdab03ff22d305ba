package ir

import (
	"fmt"
	"strings"
	"time"
)

const (
	// AttrPrefix marks a field as an XML attribute rather than a child element.
	AttrPrefix = "@"
	// TextKey holds element text when the element also has attributes or children.
	TextKey = "#text"
)

// Node is a single value in a document tree. Which fields are meaningful
// depends on Type:
//
//   - StringType, LiteralType: String
//   - IntType: Int
//   - FloatType: Float
//   - BoolType: Bool
//   - TimeType: Time
//   - ObjectType: Fields[i] is the key of Values[i], keys are unique
//   - SequenceType: Fields[i] is the tag of Values[i], tags may repeat
//   - ArrayType: Values
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String string
	Int    int64
	Float  float64
	Bool   bool
	Time   time.Time
}

type KeyVal struct {
	Key string
	Val *Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	return p
}

// Literal returns text which is written verbatim inside a CDATA section.
func Literal(v string) *Node {
	return &Node{Type: LiteralType, String: v}
}

func FromInt(v int64) *Node {
	return FromIntAt(&Node{}, v)
}

func FromIntAt(p *Node, v int64) *Node {
	p.Type = IntType
	p.Int = v
	return p
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromTime(v time.Time) *Node {
	return &Node{Type: TimeType, Time: v}
}

// NewObject returns an empty mapping.
func NewObject() *Node {
	return &Node{Type: ObjectType}
}

// FromKeyVals builds a mapping. A repeated key replaces the earlier value in
// place.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]string, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	for _, kv := range kvs {
		res.Set(kv.Key, kv.Val)
	}
	return res
}

// FromPairs builds an ordered child sequence.
func FromPairs(kvs []KeyVal) *Node {
	res := &Node{
		Type:   SequenceType,
		Fields: make([]string, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i, kv := range kvs {
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	if vs == nil {
		vs = []*Node{}
	}
	return &Node{Type: ArrayType, Values: vs}
}

// FromStrings is a convenience for lists of string scalars.
func FromStrings(vs ...string) *Node {
	res := &Node{Type: ArrayType, Values: make([]*Node, len(vs))}
	for i, v := range vs {
		res.Values[i] = FromString(v)
	}
	return res
}

// NewDocument returns the single-root mapping {root: content}.
func NewDocument(root string, content *Node) *Node {
	return &Node{
		Type:   ObjectType,
		Fields: []string{root},
		Values: []*Node{content},
	}
}

// Root returns the root tag and content of a document.
func (y *Node) Root() (string, *Node, error) {
	if y == nil || y.Type != ObjectType {
		return "", nil, fmt.Errorf("%w: not a mapping", ErrNotDocument)
	}
	if len(y.Fields) != 1 {
		return "", nil, fmt.Errorf("%w: %d top-level keys", ErrNotDocument, len(y.Fields))
	}
	return y.Fields[0], y.Values[0], nil
}

// IsAttr reports whether key names an attribute.
func IsAttr(key string) bool {
	return strings.HasPrefix(key, AttrPrefix)
}

// AttrName strips the attribute marker from key.
func AttrName(key string) string {
	return strings.TrimPrefix(key, AttrPrefix)
}

func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	return len(y.Values)
}

func (y *Node) index(key string) int {
	for i, f := range y.Fields {
		if f == key {
			return i
		}
	}
	return -1
}

// Get returns the value under key for mappings, or the first pair tagged key
// for sequences.
func (y *Node) Get(key string) *Node {
	if y == nil || (y.Type != ObjectType && y.Type != SequenceType) {
		return nil
	}
	if i := y.index(key); i >= 0 {
		return y.Values[i]
	}
	return nil
}

func (y *Node) Has(key string) bool {
	return y.Get(key) != nil
}

// Attr returns the attribute value named name.
func (y *Node) Attr(name string) *Node {
	return y.Get(AttrPrefix + name)
}

// Set stores v under key, replacing an existing value in place or appending.
// On a sequence Set always appends.
func (y *Node) Set(key string, v *Node) *Node {
	if y.Type != SequenceType {
		if i := y.index(key); i >= 0 {
			y.Values[i] = v
			return y
		}
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, v)
	return y
}

// Add groups v under key: the first occurrence is stored as is, the second
// promotes the value to a list, later ones are appended to it.
func (y *Node) Add(key string, v *Node) *Node {
	i := y.index(key)
	if i < 0 {
		y.Fields = append(y.Fields, key)
		y.Values = append(y.Values, v)
		return y
	}
	prev := y.Values[i]
	if prev.Type == ArrayType {
		prev.Values = append(prev.Values, v)
		return y
	}
	y.Values[i] = &Node{Type: ArrayType, Values: []*Node{prev, v}}
	return y
}

// Delete removes key from a mapping, or every pair tagged key from a sequence.
func (y *Node) Delete(key string) *Node {
	j := 0
	for i, f := range y.Fields {
		if f == key {
			continue
		}
		y.Fields[j] = f
		y.Values[j] = y.Values[i]
		j++
	}
	clear(y.Values[j:])
	y.Fields = y.Fields[:j]
	y.Values = y.Values[:j]
	return y
}

// Push appends v to a list.
func (y *Node) Push(v *Node) *Node {
	y.Values = append(y.Values, v)
	return y
}

func (y *Node) KeyVals() []KeyVal {
	res := make([]KeyVal, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = KeyVal{Key: f, Val: y.Values[i]}
	}
	return res
}

// Text returns the text of a string or literal node, or the #text of a
// mapping.
func (y *Node) Text() string {
	if y == nil {
		return ""
	}
	switch y.Type {
	case StringType, LiteralType:
		return y.String
	case ObjectType, SequenceType:
		if t := y.Get(TextKey); t != nil {
			return t.Text()
		}
	}
	return ""
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := *y
	if y.Fields != nil {
		res.Fields = make([]string, len(y.Fields))
		copy(res.Fields, y.Fields)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return &res
}

func (y *Node) GoString() string {
	return fmt.Sprintf("ir.Node{%s}", y.debugString())
}

func (y *Node) debugString() string {
	if y == nil {
		return "<nil>"
	}
	switch y.Type {
	case StringType:
		return fmt.Sprintf("%q", y.String)
	case LiteralType:
		return fmt.Sprintf("CDATA(%q)", y.String)
	case IntType:
		return fmt.Sprintf("%d", y.Int)
	case FloatType:
		return fmt.Sprintf("%g", y.Float)
	case BoolType:
		return fmt.Sprintf("%t", y.Bool)
	case TimeType:
		return y.Time.String()
	case ArrayType:
		parts := make([]string, len(y.Values))
		for i, v := range y.Values {
			parts[i] = v.debugString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjectType:
		parts := make([]string, len(y.Values))
		for i, v := range y.Values {
			parts[i] = fmt.Sprintf("%q: %s", y.Fields[i], v.debugString())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case SequenceType:
		parts := make([]string, len(y.Values))
		for i, v := range y.Values {
			parts[i] = fmt.Sprintf("(%q, %s)", y.Fields[i], v.debugString())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "null"
	}
}
