package osmchange

import (
	"time"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/xattr"
)

// EncodeElement returns the response form of e. In JSON it is a flat object
// carrying a type field, in XML the mapping {type: content}.
func EncodeElement(p xattr.Projector, e *Element) *ir.Node {
	if p.IsJSON() {
		return encodeContent(p, e)
	}
	return ir.NewDocument(string(e.Type), encodeContent(p, e))
}

// EncodeElements returns {"elements": [...]} in JSON. In XML elements are
// grouped by type, nodes first, keeping their relative order.
func EncodeElements(p xattr.Projector, elems []Element) *ir.Node {
	if p.IsJSON() {
		list := make([]*ir.Node, len(elems))
		for i := range elems {
			list[i] = encodeContent(p, &elems[i])
		}
		return ir.FromKeyVals([]ir.KeyVal{{Key: "elements", Val: ir.FromSlice(list)}})
	}
	res := ir.NewObject()
	for _, t := range ElementTypes {
		res.Set(string(t), ir.FromSlice(nil))
	}
	for i := range elems {
		res.Get(string(elems[i].Type)).Push(encodeContent(p, &elems[i]))
	}
	return res
}

// Encode returns the content of an osmChange document holding elems, one
// action block per element. The action is inferred from the version and
// visibility of each element.
func Encode(elems []Element) *ir.Node {
	var p xattr.Projector
	kvs := make([]ir.KeyVal, len(elems))
	for i := range elems {
		e := &elems[i]
		kvs[i] = ir.KeyVal{
			Key: string(e.Action()),
			Val: ir.NewDocument(string(e.Type), encodeContent(p, e)),
		}
	}
	return ir.FromPairs(kvs)
}

// AssignedRef is an element reference from an upload together with the
// versions stored for it.
type AssignedRef struct {
	Type     ElementType
	OldID    int64
	Elements []Element
}

// EncodeDiffResult returns the content of a diffResult document: one
// (type, {@old_id, @new_id, @new_version}) pair per stored version, in
// upload order.
func EncodeDiffResult(refs []AssignedRef) *ir.Node {
	var kvs []ir.KeyVal
	for _, ref := range refs {
		if len(ref.Elements) == 0 {
			continue
		}
		newID := ref.Elements[0].ID
		for i := range ref.Elements {
			kvs = append(kvs, ir.KeyVal{
				Key: string(ref.Type),
				Val: ir.FromKeyVals([]ir.KeyVal{
					{Key: "@old_id", Val: ir.FromInt(ref.OldID)},
					{Key: "@new_id", Val: ir.FromInt(newID)},
					{Key: "@new_version", Val: ir.FromInt(ref.Elements[i].Version)},
				}),
			})
		}
	}
	return ir.FromPairs(kvs)
}

func encodeContent(p xattr.Projector, e *Element) *ir.Node {
	res := ir.FromKeyVals(make([]ir.KeyVal, 0, 12))
	if p.IsJSON() {
		res.Set("type", ir.FromString(string(e.Type)))
	}
	res.Set(p.Attr("id"), ir.FromInt(e.ID))
	res.Set(p.Attr("version"), ir.FromInt(e.Version))
	if e.User != "" {
		res.Set(p.Attr("uid"), ir.FromInt(e.UserID))
		res.Set(p.Attr("user"), ir.FromString(e.User))
	}
	res.Set(p.Attr("changeset"), ir.FromInt(e.Changeset))
	res.Set(p.Attr("timestamp"), ir.FromTime(e.Timestamp.UTC().Truncate(time.Second)))
	res.Set(p.Attr("visible"), ir.FromBool(e.Visible))
	res.Set(p.ElemAs("tags", "tag"), encodeTags(p, e.Tags))
	if e.Point != nil {
		res.Set(p.Attr("lon"), ir.FromFloat(e.Point.Lon))
		res.Set(p.Attr("lat"), ir.FromFloat(e.Point.Lat))
	}
	switch e.Type {
	case Way:
		nodes := make([]*ir.Node, len(e.Nodes))
		for i, ref := range e.Nodes {
			if p.IsJSON() {
				nodes[i] = ir.FromInt(ref)
			} else {
				nodes[i] = ir.FromKeyVals([]ir.KeyVal{{Key: p.Attr("ref"), Val: ir.FromInt(ref)}})
			}
		}
		res.Set(p.ElemAs("nodes", "nd"), ir.FromSlice(nodes))
	case Relation:
		members := make([]*ir.Node, len(e.Members))
		for i, m := range e.Members {
			members[i] = ir.FromKeyVals([]ir.KeyVal{
				{Key: p.Attr("type"), Val: ir.FromString(string(m.Type))},
				{Key: p.Attr("ref"), Val: ir.FromInt(m.Ref)},
				{Key: p.Attr("role"), Val: ir.FromString(m.Role)},
			})
		}
		res.Set(p.ElemAs("members", "member"), ir.FromSlice(members))
	}
	return res
}

func encodeTags(p xattr.Projector, tags []Tag) *ir.Node {
	if p.IsJSON() {
		res := ir.FromKeyVals(make([]ir.KeyVal, 0, len(tags)))
		for _, t := range tags {
			res.Set(t.Key, ir.FromString(t.Value))
		}
		return res
	}
	list := make([]*ir.Node, len(tags))
	for i, t := range tags {
		list[i] = ir.FromKeyVals([]ir.KeyVal{
			{Key: p.Attr("k"), Val: ir.FromString(t.Key)},
			{Key: p.Attr("v"), Val: ir.FromString(t.Value)},
		})
	}
	return ir.FromSlice(list)
}
