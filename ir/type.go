package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	StringType
	IntType
	FloatType
	BoolType
	TimeType
	LiteralType
	ObjectType
	ArrayType
	SequenceType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:     "Null",
		StringType:   "String",
		IntType:      "Int",
		FloatType:    "Float",
		BoolType:     "Bool",
		TimeType:     "Time",
		LiteralType:  "Literal",
		ObjectType:   "Object",
		ArrayType:    "Array",
		SequenceType: "Sequence",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":     NullType,
		"String":   StringType,
		"Int":      IntType,
		"Float":    FloatType,
		"Bool":     BoolType,
		"Time":     TimeType,
		"Literal":  LiteralType,
		"Object":   ObjectType,
		"Array":    ArrayType,
		"Sequence": SequenceType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		StringType,
		IntType,
		FloatType,
		BoolType,
		TimeType,
		LiteralType,
		ObjectType,
		ArrayType,
		SequenceType,
	}
}

// IsLeaf reports whether nodes of type t carry a single value rather than
// children. Literal text is a leaf.
func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType, SequenceType:
		return false
	default:
		return true
	}
}

// IsScalar reports whether t may appear as an attribute value.
func (t Type) IsScalar() bool {
	switch t {
	case StringType, IntType, FloatType, BoolType, TimeType:
		return true
	default:
		return false
	}
}
