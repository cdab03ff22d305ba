package parse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/Harvester57/openstreetmap-ng/osmxml/debug"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/profile"
)

const xmlSpace = " \t\r\n"

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes an XML document into a tree. A leading UTF-8 byte order
// mark is dropped. Attribute names keep only their local part, so
// namespaced attributes sharing a local name are reported as redefined.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{profile: profile.Default(), maxSize: DefaultMaxSize}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.maxSize > 0 && int64(len(d)) > pOpts.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds the limit of %s",
			ErrInputTooBig, debug.Size(len(d)), debug.Size(pOpts.maxSize))
	}
	if debug.Parse() {
		debug.Logf("parsing %s XML\n", debug.Size(len(d)))
	}
	d = bytes.TrimPrefix(d, utf8BOM)
	p := &parser{
		opts:     pOpts,
		dec:      xml.NewDecoder(bytes.NewReader(d)),
		attrKeys: make(map[string]string),
	}
	p.dec.Strict = true
	p.dec.Entity = map[string]string{}
	return p.parse()
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

type parser struct {
	opts  *parseOpts
	dec   *xml.Decoder
	stack []frame
	slab  slab
	// attribute name -> "@" + name, shared by every element of the document
	attrKeys map[string]string
}

// frame is an open element.
type frame struct {
	tag string
	// attributes, then grouped children
	content *ir.Node
	nAttrs  int
	// children kept in document order
	seq  []ir.KeyVal
	text []byte
}

func (p *parser) parse() (*ir.Node, error) {
	var root *ir.Node
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, p.syntaxErr(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, p.errorf("element <%s> after the root element", t.Name.Local)
			}
			if err := p.start(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			tag, v := p.end()
			if len(p.stack) == 0 {
				root = ir.NewDocument(tag, v)
				continue
			}
			p.child(tag, v)
		case xml.CharData:
			n := len(p.stack)
			if n == 0 {
				if len(bytes.Trim(t, xmlSpace)) != 0 {
					return nil, p.errorf("character data outside the root element")
				}
				continue
			}
			p.stack[n-1].text = append(p.stack[n-1].text, t...)
		}
		// comments, processing instructions and directives carry no data
	}
	if root == nil {
		return nil, p.errorf("no root element")
	}
	if debug.Parse() {
		debug.Logf("parsed <%s>\n", root.Fields[0])
	}
	return root, nil
}

func (p *parser) push(tag string) *frame {
	n := len(p.stack)
	if n < cap(p.stack) {
		p.stack = p.stack[:n+1]
	} else {
		p.stack = append(p.stack, frame{})
	}
	fr := &p.stack[n]
	fr.tag = tag
	fr.content = p.slab.node()
	fr.content.Type = ir.ObjectType
	fr.nAttrs = 0
	fr.seq = fr.seq[:0]
	fr.text = fr.text[:0]
	return fr
}

func (p *parser) start(t xml.StartElement) error {
	fr := p.push(t.Name.Local)
	c := fr.content
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		key := p.attrKey(a.Name.Local)
		if c.Has(key) {
			return p.errorf("attribute %q redefined on <%s>", a.Name.Local, fr.tag)
		}
		c.Fields = append(c.Fields, key)
		c.Values = append(c.Values, coerceAt(p.slab.node(), p.opts.profile, a.Name.Local, a.Value))
		fr.nAttrs++
	}
	return nil
}

func (p *parser) attrKey(name string) string {
	if k, ok := p.attrKeys[name]; ok {
		return k
	}
	k := ir.AttrPrefix + name
	p.attrKeys[name] = k
	return k
}

func (p *parser) child(tag string, v *ir.Node) {
	fr := &p.stack[len(p.stack)-1]
	if p.opts.profile.IsSequence(fr.tag, tag) {
		fr.seq = append(fr.seq, ir.KeyVal{Key: tag, Val: v})
		return
	}
	c := fr.content
	if p.opts.profile.ForceList(tag) && !c.Has(tag) {
		l := p.slab.node()
		l.Type = ir.ArrayType
		l.Values = []*ir.Node{v}
		c.Set(tag, l)
		return
	}
	c.Add(tag, v)
}

func (p *parser) end() (string, *ir.Node) {
	n := len(p.stack) - 1
	fr := &p.stack[n]
	tag, v := fr.tag, p.content(fr)
	fr.content = nil
	clear(fr.seq)
	p.stack = p.stack[:n]
	return tag, v
}

func (p *parser) content(fr *frame) *ir.Node {
	text := bytes.Trim(fr.text, xmlSpace)
	c := fr.content
	if len(fr.seq) == 0 {
		if len(c.Fields) == 0 {
			if len(text) != 0 {
				return ir.FromStringAt(c, string(text))
			}
			return c
		}
		if len(text) != 0 {
			c.Set(ir.TextKey, ir.FromStringAt(p.slab.node(), string(text)))
		}
		return c
	}

	size := len(c.Fields) + len(fr.seq) + 1
	fields := make([]string, 0, size)
	values := make([]*ir.Node, 0, size)
	fields = append(fields, c.Fields[:fr.nAttrs]...)
	values = append(values, c.Values[:fr.nAttrs]...)
	for _, kv := range fr.seq {
		fields = append(fields, kv.Key)
		values = append(values, kv.Val)
	}
	fields = append(fields, c.Fields[fr.nAttrs:]...)
	values = append(values, c.Values[fr.nAttrs:]...)
	if len(text) != 0 {
		fields = append(fields, ir.TextKey)
		values = append(values, ir.FromStringAt(p.slab.node(), string(text)))
	}
	c.Type = ir.SequenceType
	c.Fields = fields
	c.Values = values
	return c
}

func (p *parser) syntaxErr(err error) error {
	line, col := p.dec.InputPos()
	msg := err.Error()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		msg = se.Msg
		line = se.Line
	}
	return &SyntaxError{Line: line, Col: col, Offset: p.dec.InputOffset(), Msg: msg}
}

func (p *parser) errorf(format string, args ...any) error {
	line, col := p.dec.InputPos()
	return &SyntaxError{
		Line:   line,
		Col:    col,
		Offset: p.dec.InputOffset(),
		Msg:    fmt.Sprintf(format, args...),
	}
}
