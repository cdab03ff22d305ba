package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Harvester57/openstreetmap-ng/osmxml/debug"
	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
)

// Declaration starts every XML document.
const Declaration = "<?xml version='1.0' encoding='UTF-8'?>\n"

// buffers larger than this are dropped instead of pooled
const maxPooled = 1 << 20

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

type EncState struct {
	depth, indent int
	format        format.Format

	Color func(ColorAttr, string) string

	buf *bytes.Buffer
}

func Encode(doc *ir.Node, w io.Writer, opts ...EncodeOption) error {
	return withState(opts, func(es *EncState) error {
		if err := encode(doc, es); err != nil {
			return err
		}
		_, err := w.Write(es.buf.Bytes())
		return err
	})
}

// Unparse returns the encoding of doc.
func Unparse(doc *ir.Node, opts ...EncodeOption) ([]byte, error) {
	var res []byte
	err := withState(opts, func(es *EncState) error {
		if err := encode(doc, es); err != nil {
			return err
		}
		res = bytes.Clone(es.buf.Bytes())
		return nil
	})
	return res, err
}

func withState(opts []EncodeOption, f func(*EncState) error) error {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() > maxPooled {
			return
		}
		buf.Reset()
		bufPool.Put(buf)
	}()
	es := &EncState{buf: buf}
	for _, opt := range opts {
		opt(es)
	}
	return f(es)
}

func encode(doc *ir.Node, es *EncState) error {
	if !es.format.IsMarkup() {
		d, err := ir.ToJSON(doc)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		es.buf.Write(d)
		es.buf.WriteByte('\n')
		return nil
	}
	if doc == nil || doc.Type != ir.ObjectType || len(doc.Fields) != 1 {
		return fmt.Errorf("%w: got %d top-level keys", ErrMultipleRoots, doc.Len())
	}
	tag, content := doc.Fields[0], doc.Values[0]
	es.writeColor(DeclColor, Declaration[:len(Declaration)-1])
	es.buf.WriteByte('\n')
	switch {
	case content == nil:
		return fmt.Errorf("%w: nil root value", ErrEncoding)
	case content.Type == ir.ArrayType && len(content.Values) > 1:
		return fmt.Errorf("%w: root <%s> repeated %d times", ErrMultipleRoots, tag, len(content.Values))
	case content.Type.IsLeaf() || len(content.Values) > 0:
		if err := encodeElement(tag, content, es); err != nil {
			return err
		}
		es.buf.WriteByte('\n')
	}
	// an empty list or mapping at the root writes no element
	if debug.Encode() {
		debug.Logf("encoded %s XML\n", debug.Size(es.buf.Len()))
	}
	return nil
}

// encodeElement writes v under tag: once for a scalar or mapping, once per
// item for a list.
func encodeElement(tag string, v *ir.Node, es *EncState) error {
	if err := checkName(tag); err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: nil value for <%s>", ErrEncoding, tag)
	}
	switch v.Type {
	case ir.ArrayType:
		for i, item := range v.Values {
			if item != nil && item.Type == ir.ArrayType {
				return fmt.Errorf("%w: nested list in <%s> item %d", ErrEncoding, tag, i)
			}
			if i > 0 {
				es.newline()
			}
			if err := encodeElement(tag, item, es); err != nil {
				return err
			}
		}
		return nil
	case ir.ObjectType, ir.SequenceType:
		return encodeContent(tag, v, es)
	case ir.NullType:
		es.openTag(tag)
		es.writeColor(SepColor, "/>")
		return nil
	case ir.LiteralType:
		es.openTag(tag)
		es.writeColor(SepColor, ">")
		if err := es.writeCDATA(v.String); err != nil {
			return err
		}
		es.closeTag(tag)
		return nil
	default:
		s, err := scalarText(v)
		if err != nil {
			return err
		}
		es.openTag(tag)
		es.writeColor(SepColor, ">")
		if err := es.writeText(TextColor, s); err != nil {
			return err
		}
		es.closeTag(tag)
		return nil
	}
}

func encodeContent(tag string, v *ir.Node, es *EncState) error {
	es.openTag(tag)
	body := false
	for i, f := range v.Fields {
		if !ir.IsAttr(f) {
			body = body || f == ir.TextKey || !empty(v.Values[i])
			continue
		}
		if err := encodeAttr(tag, f, v.Values[i], es); err != nil {
			return err
		}
	}
	if !body {
		es.writeColor(SepColor, "/>")
		return nil
	}
	es.writeColor(SepColor, ">")

	// mappings write their text first, sequences write text where it falls
	hasText := false
	if v.Type == ir.ObjectType {
		if t := v.Get(ir.TextKey); t != nil {
			hasText = true
			if err := encodeText(tag, t, es); err != nil {
				return err
			}
		}
	} else {
		hasText = v.Has(ir.TextKey)
	}

	pretty := es.indent > 0 && !hasText
	es.depth++
	children := false
	for i, f := range v.Fields {
		if ir.IsAttr(f) {
			continue
		}
		if f == ir.TextKey {
			if v.Type == ir.SequenceType {
				if err := encodeText(tag, v.Values[i], es); err != nil {
					return err
				}
			}
			continue
		}
		if empty(v.Values[i]) {
			continue
		}
		if pretty {
			es.newline()
		}
		if err := encodeElement(f, v.Values[i], es); err != nil {
			return err
		}
		children = true
	}
	es.depth--
	if pretty && children {
		es.newline()
	}
	es.closeTag(tag)
	return nil
}

func empty(v *ir.Node) bool {
	return v != nil && v.Type == ir.ArrayType && len(v.Values) == 0
}

func encodeAttr(tag, key string, v *ir.Node, es *EncState) error {
	name := ir.AttrName(key)
	if err := checkName(name); err != nil {
		return err
	}
	if v == nil || !v.Type.IsLeaf() {
		return fmt.Errorf("%w: attribute %q of <%s> is not a scalar", ErrEncoding, name, tag)
	}
	s, err := scalarText(v)
	if err != nil {
		return err
	}
	es.buf.WriteByte(' ')
	es.writeColor(AttrNameColor, name)
	es.writeColor(SepColor, `="`)
	if err := es.writeAttrValue(s); err != nil {
		return err
	}
	es.writeColor(SepColor, `"`)
	return nil
}

func encodeText(tag string, v *ir.Node, es *EncState) error {
	if v == nil || !v.Type.IsLeaf() {
		return fmt.Errorf("%w: text of <%s> is not a scalar", ErrEncoding, tag)
	}
	if v.Type == ir.LiteralType {
		return es.writeCDATA(v.String)
	}
	s, err := scalarText(v)
	if err != nil {
		return err
	}
	return es.writeText(TextColor, s)
}

func scalarText(v *ir.Node) (string, error) {
	s, err := ir.ScalarText(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return s, nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n<>&\"'=/!?") || strings.HasPrefix(name, "#") {
		return fmt.Errorf("%w: invalid name %q", ErrEncoding, name)
	}
	return nil
}

func (es *EncState) openTag(tag string) {
	es.writeColor(SepColor, "<")
	es.writeColor(TagColor, tag)
}

func (es *EncState) closeTag(tag string) {
	es.writeColor(SepColor, "</")
	es.writeColor(TagColor, tag)
	es.writeColor(SepColor, ">")
}

func (es *EncState) newline() {
	if es.indent <= 0 {
		return
	}
	es.buf.WriteByte('\n')
	for range es.depth * es.indent {
		es.buf.WriteByte(' ')
	}
}

func (es *EncState) writeColor(a ColorAttr, s string) {
	if es.Color != nil {
		s = es.Color(a, s)
	}
	es.buf.WriteString(s)
}
