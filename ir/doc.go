// Package ir provides the in-memory value tree shared by the XML codec and
// the plain-structured (JSON) encoder.
//
// # Overview
//
// Every document, whether parsed from XML, decoded from JSON, or assembled
// by request-handling code, is an ir.Node tree. The tree carries no position
// information and no parent links, so subtrees can be built independently and
// attached anywhere.
//
// # Node Types
//
// The Type field selects which other fields are meaningful:
//
//   - StringType, IntType, FloatType, BoolType, TimeType: scalars
//   - LiteralType: text to be written verbatim inside a CDATA section
//   - ObjectType: a mapping, Fields[i] is the key of Values[i]
//   - ArrayType: a list
//   - SequenceType: an ordered child sequence, Fields[i] is the tag of
//     Values[i] and tags may repeat
//   - NullType: no value
//
// # Element Content
//
// A mapping that represents XML element content follows these key rules:
//
//   - keys starting with AttrPrefix ("@") are attributes and hold scalars
//   - TextKey ("#text") holds the element text when attributes or children
//     are also present
//   - every other key is a child element; a list value means the tag repeats
//
// An element whose only content is text is represented by the bare scalar.
//
// Mappings discard the relative order of different child tags. Containers
// whose children must be replayed in document order (an osmChange upload,
// for example) use SequenceType instead.
//
// # Documents
//
// A document is a mapping with exactly one key, the root tag:
//
//	doc := ir.NewDocument("osm", ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "@version", Val: ir.FromString("0.6")},
//	    {Key: "node", Val: ir.FromSlice(nodes)},
//	}))
//	root, content, err := doc.Root()
//
// # Plain-Structured Form
//
// ToJSON and FromJSON convert trees to and from JSON with mapping field
// order kept; ToYAML renders YAML; ToAny and FromAny convert to plain Go
// values.
//
// # Thread Safety
//
// Trees are owned by the request that built them and are not safe for
// concurrent mutation.
package ir
