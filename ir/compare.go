package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Mappings are compared as sets of keys: field order does not matter.
// Lists and sequences are compared element by element.
func Compare(a, b *Node) int {
	return compare(a, b, false)
}

// Equal reports whether a and b hold the same value.
func Equal(a, b *Node) bool {
	return compare(a, b, false) == 0
}

// EqualText is Equal with scalars compared by their text form, so that an
// attribute parsed as the string "1" equals one built as the integer 1, and a
// literal equals the plain string with the same content.
func EqualText(a, b *Node) bool {
	return compare(a, b, true) == 0
}

func compare(a, b *Node, text bool) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if text && a.Type.IsLeaf() && b.Type.IsLeaf() {
		as, aErr := ScalarText(a)
		bs, bErr := ScalarText(b)
		if aErr == nil && bErr == nil {
			return strings.Compare(as, bs)
		}
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case IntType:
		return cmp.Compare(a.Int, b.Int)
	case FloatType:
		return cmp.Compare(a.Float, b.Float)
	case StringType, LiteralType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case TimeType:
		return a.Time.Compare(b.Time)
	case ArrayType:
		return compareValues(a.Values, b.Values, text)
	case SequenceType:
		if c := slices.Compare(a.Fields, b.Fields); c != 0 {
			return c
		}
		return compareValues(a.Values, b.Values, text)
	case ObjectType:
		return compareObjects(a, b, text)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Int < Float < Time < String < Literal < Array < Sequence < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case IntType:
		return 2
	case FloatType:
		return 3
	case TimeType:
		return 4
	case StringType:
		return 5
	case LiteralType:
		return 6
	case ArrayType:
		return 7
	case SequenceType:
		return 8
	case ObjectType:
		return 9
	}
	return 100
}

func compareValues(a, b []*Node, text bool) int {
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		if c := compare(a[i], b[i], text); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareObjects(a, b *Node, text bool) int {
	if c := cmp.Compare(len(a.Fields), len(b.Fields)); c != 0 {
		return c
	}
	aKeys := sortedKeys(a)
	bKeys := sortedKeys(b)
	for i := range aKeys {
		if c := strings.Compare(a.Fields[aKeys[i]], b.Fields[bKeys[i]]); c != 0 {
			return c
		}
		if c := compare(a.Values[aKeys[i]], b.Values[bKeys[i]], text); c != 0 {
			return c
		}
	}
	return 0
}

func sortedKeys(y *Node) []int {
	idx := make([]int, len(y.Fields))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(i, j int) int {
		return strings.Compare(y.Fields[i], y.Fields[j])
	})
	return idx
}
