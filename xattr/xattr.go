// Package xattr resolves the key under which a field is stored in a value
// tree, so that one piece of tree-building code serves both XML and JSON
// responses.
//
// In JSON mode every key is the plain field name. In XML mode attribute
// keys carry the ir.AttrPrefix marker and both attributes and elements may
// use a different, markup-specific name:
//
//	p := xattr.For(ctx)
//	elem := ir.NewObject()
//	elem.Set(p.Attr("id"), ir.FromInt(id))             // "@id" or "id"
//	elem.Set(p.ElemAs("tags", "tag"), tags)             // "tag" or "tags"
package xattr

import (
	"context"

	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
)

// Projector maps logical field names to tree keys for one output format.
// The zero value projects for XML.
type Projector struct {
	json bool
}

// For returns the projector for the format bound to ctx.
func For(ctx context.Context) Projector {
	return ForFormat(format.FromContext(ctx))
}

func ForFormat(f format.Format) Projector {
	return Projector{json: !f.IsMarkup()}
}

func (p Projector) IsJSON() bool { return p.json }

// Attr returns the key for an attribute position.
func (p Projector) Attr(name string) string {
	return p.AttrAs(name, "")
}

// AttrAs is Attr with a different name used in XML. An empty xmlName falls
// back to name.
func (p Projector) AttrAs(name, xmlName string) string {
	if p.json {
		return name
	}
	if xmlName == "" {
		xmlName = name
	}
	return ir.AttrPrefix + xmlName
}

// Elem returns the key for a child element position.
func (p Projector) Elem(name string) string {
	return name
}

// ElemAs is Elem with a different tag used in XML, typically the singular
// of a plural JSON field.
func (p Projector) ElemAs(name, xmlName string) string {
	if p.json || xmlName == "" {
		return name
	}
	return xmlName
}
