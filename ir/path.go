package ir

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed selector such as $.osm.node[0].'@id'.
// Fields select mapping keys or sequence tags, indices select list elements
// or sequence pairs, [*] selects all of them and .. descends recursively.
type Path []step

type stepKind uint8

const (
	fieldStep stepKind = iota
	indexStep
	allStep
	subtreeStep
)

type step struct {
	kind  stepKind
	field string
	index int
}

func ParsePath(s string) (Path, error) {
	if !strings.HasPrefix(s, "$") {
		return nil, fmt.Errorf("path %q should start with '$'", s)
	}
	var p Path
	rest := s[1:]
	for rest != "" {
		var (
			st  step
			err error
		)
		switch {
		case strings.HasPrefix(rest, ".."):
			st, rest = step{kind: subtreeStep}, rest[2:]
		case rest[0] == '.':
			st.field, rest, err = scanField(rest[1:])
		case rest[0] == '[':
			st, rest, err = scanIndex(rest[1:])
		default:
			err = errors.New("expected '.' or '['")
		}
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", s, err)
		}
		p = append(p, st)
	}
	return p, nil
}

func scanIndex(s string) (step, string, error) {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return step{}, "", errors.New("unterminated '['")
	}
	in, rest := s[:end], s[end+1:]
	if in == "*" {
		return step{kind: allStep}, rest, nil
	}
	n, err := strconv.Atoi(in)
	if err != nil || n < 0 {
		return step{}, "", fmt.Errorf("bad index %q", in)
	}
	return step{kind: indexStep, index: n}, rest, nil
}

// scanField reads a bare name up to the next '.' or '[', or a quoted name
// in which a backslash escapes the following byte.
func scanField(s string) (field, rest string, err error) {
	if s == "" || s[0] == '.' || s[0] == '[' {
		return "", "", errors.New("missing field name")
	}
	if s[0] != '\'' {
		end := strings.IndexAny(s, ".[")
		if end < 0 {
			end = len(s)
		}
		return s[:end], s[end:], nil
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			i++
			b.WriteByte(s[i])
		case c == '\'':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", errors.New("unterminated quoted field")
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, st := range p {
		switch st.kind {
		case subtreeStep:
			b.WriteString("..")
		case allStep:
			b.WriteString("[*]")
		case indexStep:
			b.WriteString("[" + strconv.Itoa(st.index) + "]")
		default:
			b.WriteString("." + quoteField(st.field))
		}
	}
	return b.String()
}

func quoteField(f string) string {
	if f != "" && !strings.ContainsAny(f, `'.*$[]\`) {
		return f
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(f) + "'"
}

// GetPath returns a copy of the single value at path, or nil when a field
// along it is missing. Sequences resolve a tag to its first pair.
func (y *Node) GetPath(path string) (*Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	res := y
	for _, st := range p {
		switch st.kind {
		case allStep:
			return nil, errors.New("[*] in get")
		case subtreeStep:
			return nil, errors.New(".. in get")
		case indexStep:
			if res.Type != ArrayType && res.Type != SequenceType {
				return nil, fmt.Errorf("index [%d] on %s", st.index, res.Type)
			}
			if st.index >= len(res.Values) {
				return nil, fmt.Errorf("index out of bounds %d (len %d)", st.index, len(res.Values))
			}
			res = res.Values[st.index]
		default:
			if res.Type != ObjectType && res.Type != SequenceType {
				return nil, fmt.Errorf("field %q on %s", st.field, res.Type)
			}
			if res = res.Get(st.field); res == nil {
				return nil, nil
			}
		}
	}
	return res.Clone(), nil
}

// ListPath appends copies of every value matching path to dst.
func (y *Node) ListPath(dst []*Node, path string) ([]*Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return y.list(dst, p), nil
}

func (y *Node) list(dst []*Node, p Path) []*Node {
	if len(p) == 0 {
		return append(dst, y.Clone())
	}
	st, rest := p[0], p[1:]
	switch st.kind {
	case subtreeStep:
		return y.listSubtree(dst, rest)
	case fieldStep:
		if y.Type != ObjectType && y.Type != SequenceType {
			return dst
		}
		for i, f := range y.Fields {
			if f == st.field {
				dst = y.Values[i].list(dst, rest)
			}
		}
	case indexStep:
		if (y.Type == ArrayType || y.Type == SequenceType) && st.index < len(y.Values) {
			dst = y.Values[st.index].list(dst, rest)
		}
	case allStep:
		if y.Type == ArrayType || y.Type == SequenceType {
			for _, v := range y.Values {
				dst = v.list(dst, rest)
			}
		}
	}
	return dst
}

// listSubtree applies p at y and at every container below it.
func (y *Node) listSubtree(dst []*Node, p Path) []*Node {
	if y.Type.IsLeaf() {
		return dst
	}
	dst = y.list(dst, p)
	for _, v := range y.Values {
		dst = v.listSubtree(dst, p)
	}
	return dst
}
