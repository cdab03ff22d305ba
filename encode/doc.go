// Package encode writes value trees as XML documents.
//
// # Usage
//
//	doc := ir.NewDocument("osm", content)
//	err := encode.Encode(doc, w)
//
//	// Into a fresh byte slice
//	d, err := encode.Unparse(doc)
//
//	// JSON for the same tree
//	err := encode.Encode(doc, w, encode.EncodeFormat(format.JSONFormat))
//
// Output starts with the declaration <?xml version='1.0' encoding='UTF-8'?>
// and ends with a newline. Attribute keys (ir.AttrPrefix) are written in
// the start tag, ir.TextKey as element text, lists as repeated sibling
// elements and ir.LiteralType values as CDATA sections. Sequences are
// written pair by pair in their given order.
//
// A document whose root value is an empty list or mapping produces the
// declaration alone.
//
// The document is rendered into a pooled buffer and only copied to the
// writer once complete, so a failed call writes nothing.
//
// # Related Packages
//
//   - github.com/Harvester57/openstreetmap-ng/osmxml/ir - value trees
//   - github.com/Harvester57/openstreetmap-ng/osmxml/parse - XML to trees
package encode
