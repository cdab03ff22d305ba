package osmchange

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Harvester57/openstreetmap-ng/osmxml/debug"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
)

// CoordinatePrecision is the number of decimal places kept for longitudes
// and latitudes.
const CoordinatePrecision = 7

type decodeOpts struct {
	changeset    int64
	hasChangeset bool
}

type DecodeOption func(*decodeOpts)

// WithChangeset assigns every decoded element to changeset id instead of
// reading each element's changeset attribute.
func WithChangeset(id int64) DecodeOption {
	return func(o *decodeOpts) {
		o.changeset = id
		o.hasChangeset = true
	}
}

// Decode destructures a parsed osmChange document into its action blocks,
// in document order.
//
// Attributes of the osmChange element and action blocks holding only
// attributes are skipped. Created elements get version 1 and must not have a
// positive id. Modified and deleted elements must carry a version of at
// least 1. Deleted elements are invisible, and a delete block with an
// if-unused attribute marks its elements DeleteIfUnused.
func Decode(doc *ir.Node, opts ...DecodeOption) ([]Change, error) {
	o := &decodeOpts{}
	for _, f := range opts {
		f(o)
	}
	root, content, err := doc.Root()
	if err != nil || root != "osmChange" {
		return nil, &Error{Err: ErrBadXML, Detail: "XML doesn't contain an osmChange element."}
	}
	if attrsOnly(content) {
		if debug.Parse() {
			debug.Logf("skipped empty osmChange\n")
		}
		return nil, nil
	}
	if content.Type != ir.SequenceType && content.Type != ir.ObjectType {
		return nil, badXML("osmChange", "unexpected text content")
	}

	var res []Change
	for i, key := range content.Fields {
		if ir.IsAttr(key) {
			continue
		}
		if key == ir.TextKey {
			return nil, badXML("osmChange", "unexpected text content")
		}
		data := content.Values[i]
		if attrsOnly(data) {
			continue
		}
		action := Action(key)
		switch action {
		case Create, Modify, Delete:
		default:
			return nil, unsupportedAction(key)
		}
		switch data.Type {
		case ir.SequenceType:
		case ir.ObjectType:
			// no element children
			continue
		default:
			return nil, badXML("osmChange", "unexpected content in <%s>", key)
		}
		ch, err := o.decodeAction(action, data)
		if err != nil {
			return nil, err
		}
		res = append(res, ch)
	}
	return res, nil
}

func (o *decodeOpts) decodeAction(action Action, data *ir.Node) (Change, error) {
	ch := Change{Action: action, Elements: make([]Element, 0, len(data.Values))}
	for i, key := range data.Fields {
		if ir.IsAttr(key) {
			if action == Delete && ir.AttrName(key) == "if-unused" {
				ch.IfUnused = true
			}
			continue
		}
		if key == ir.TextKey {
			return ch, badXML(string(action), "unexpected text content")
		}
		var (
			e   Element
			err error
		)
		switch action {
		case Create:
			e, err = o.decodeElement(key, data.Values[i], true)
			if err != nil {
				return ch, err
			}
			if e.ID > 0 {
				return ch, createBadID(e.Type)
			}
		case Modify:
			e, err = o.decodeElement(key, data.Values[i], false)
			if err != nil {
				return ch, err
			}
			if e.Version <= 1 {
				return ch, badVersion(&e)
			}
		case Delete:
			e, err = o.decodeElement(key, data.Values[i], false)
			if err != nil {
				return ch, err
			}
			e.Visible = false
			if e.Version <= 1 {
				return ch, badVersion(&e)
			}
			e.DeleteIfUnused = ch.IfUnused
		}
		ch.Elements = append(ch.Elements, e)
	}
	return ch, nil
}

func attrsOnly(v *ir.Node) bool {
	if v == nil || v.Type == ir.NullType {
		return true
	}
	if v.Type != ir.ObjectType {
		return false
	}
	for _, k := range v.Fields {
		if !ir.IsAttr(k) {
			return false
		}
	}
	return true
}

// DecodeElement decodes the content of a single element, as found under an
// osm document. Its version is incremented like an update.
func DecodeElement(tag string, data *ir.Node, opts ...DecodeOption) (Element, error) {
	o := &decodeOpts{}
	for _, f := range opts {
		f(o)
	}
	return o.decodeElement(tag, data, false)
}

// FirstElement returns the content of the first <tag> child of an osm
// document, or nil.
func FirstElement(doc *ir.Node, tag ElementType) *ir.Node {
	root, content, err := doc.Root()
	if err != nil || root != "osm" {
		return nil
	}
	v := content.Get(string(tag))
	if v != nil && v.Type == ir.ArrayType {
		if len(v.Values) == 0 {
			return nil
		}
		return v.Values[0]
	}
	return v
}

func (o *decodeOpts) decodeElement(tag string, data *ir.Node, create bool) (Element, error) {
	t, err := ParseElementType(tag)
	if err != nil {
		return Element{}, badXML(tag, "unknown element type")
	}
	if data == nil || data.Type == ir.NullType {
		data = ir.NewObject()
	}
	if data.Type != ir.ObjectType {
		return Element{}, badXML(tag, "element has no attributes")
	}
	e := Element{Type: t, Visible: true}

	id, ok, err := intAttr(data, "id")
	if err != nil {
		return e, badXML(tag, "%v", err)
	}
	if !ok {
		return e, badXML(tag, "missing id")
	}
	e.ID = id

	if !create {
		v, _, err := intAttr(data, "version")
		if err != nil {
			return e, badXML(tag, "%v", err)
		}
		e.Version = v
	}
	e.Version++

	if o.hasChangeset {
		e.Changeset = o.changeset
	} else if e.Changeset, _, err = intAttr(data, "changeset"); err != nil {
		return e, badXML(tag, "%v", err)
	}

	if v := data.Attr("visible"); v != nil {
		vis, err := boolValue(v)
		if err != nil {
			return e, badXML(tag, "visible: %v", err)
		}
		e.Visible = vis
	}

	if e.Tags, err = decodeTags(data.Get("tag")); err != nil {
		return e, badXML(tag, "%v", err)
	}

	lon, hasLon, err := floatAttr(data, "lon")
	if err != nil {
		return e, badXML(tag, "%v", err)
	}
	lat, hasLat, err := floatAttr(data, "lat")
	if err != nil {
		return e, badXML(tag, "%v", err)
	}
	if hasLon && hasLat {
		e.Point = &Point{Lon: roundCoord(lon), Lat: roundCoord(lat)}
	}

	switch t {
	case Way:
		nds, err := items(data.Get("nd"))
		if err != nil {
			return e, badXML(tag, "nd: %v", err)
		}
		for _, nd := range nds {
			ref, ok, err := intAttr(nd, "ref")
			if err != nil || !ok {
				return e, badXML(tag, "nd without a valid ref")
			}
			e.Nodes = append(e.Nodes, ref)
		}
	case Relation:
		members, err := items(data.Get("member"))
		if err != nil {
			return e, badXML(tag, "member: %v", err)
		}
		for _, m := range members {
			mt, err := ParseElementType(m.Attr("type").Text())
			if err != nil {
				return e, badXML(tag, "member: %v", err)
			}
			ref, ok, err := intAttr(m, "ref")
			if err != nil || !ok {
				return e, badXML(tag, "member without a valid ref")
			}
			e.Members = append(e.Members, Member{Type: mt, Ref: ref, Role: m.Attr("role").Text()})
		}
	}
	return e, nil
}

func decodeTags(v *ir.Node) ([]Tag, error) {
	tags, err := items(v)
	if err != nil || len(tags) == 0 {
		return nil, err
	}
	res := make([]Tag, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		k := t.Attr("k")
		if k == nil {
			return nil, errors.New("tag without a key")
		}
		key, err := ir.ScalarText(k)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate tag key %q", key)
		}
		seen[key] = struct{}{}
		var val string
		if v := t.Attr("v"); v != nil {
			if val, err = ir.ScalarText(v); err != nil {
				return nil, err
			}
		}
		res = append(res, Tag{Key: key, Value: val})
	}
	return res, nil
}

// items returns the entries of a repeated child: the values of a list, or a
// single mapping on its own.
func items(v *ir.Node) ([]*ir.Node, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Type {
	case ir.ArrayType:
		for _, x := range v.Values {
			if x.Type != ir.ObjectType {
				return nil, fmt.Errorf("expected attributes, got %s", x.Type)
			}
		}
		return v.Values, nil
	case ir.ObjectType:
		return []*ir.Node{v}, nil
	}
	return nil, fmt.Errorf("expected attributes, got %s", v.Type)
}

func intAttr(data *ir.Node, name string) (int64, bool, error) {
	v := data.Attr(name)
	if v == nil {
		return 0, false, nil
	}
	switch v.Type {
	case ir.IntType:
		return v.Int, true, nil
	case ir.StringType:
		i, err := strconv.ParseInt(v.String, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%s: invalid integer %q", name, v.String)
		}
		return i, true, nil
	}
	return 0, false, fmt.Errorf("%s: expected an integer, got %s", name, v.Type)
}

func floatAttr(data *ir.Node, name string) (float64, bool, error) {
	v := data.Attr(name)
	if v == nil {
		return 0, false, nil
	}
	switch v.Type {
	case ir.FloatType:
		return v.Float, true, nil
	case ir.IntType:
		return float64(v.Int), true, nil
	case ir.StringType:
		f, err := strconv.ParseFloat(v.String, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, fmt.Errorf("%s: invalid number %q", name, v.String)
		}
		return f, true, nil
	}
	return 0, false, fmt.Errorf("%s: expected a number, got %s", name, v.Type)
}

func boolValue(v *ir.Node) (bool, error) {
	switch v.Type {
	case ir.BoolType:
		return v.Bool, nil
	case ir.StringType:
		switch v.String {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, fmt.Errorf("invalid boolean %q", v.String)
	}
	return false, fmt.Errorf("expected a boolean, got %s", v.Type)
}

func roundCoord(f float64) float64 {
	scale := math.Pow10(CoordinatePrecision)
	return math.Round(f*scale) / scale
}
