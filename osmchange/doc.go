// Package osmchange converts between parsed osmChange uploads and elements,
// and builds the element, osmChange and diffResult trees written back to
// clients.
//
// A typical upload handler:
//
//	doc, err := osmxml.Parse(body)
//	changes, err := osmchange.Decode(doc, osmchange.WithChangeset(id))
//	...
//	res := osmchange.EncodeDiffResult(assigned)
//	out, err := osmxml.Unparse(ir.NewDocument("diffResult", res))
//
// Decode relies on the default profile, which keeps the children of
// osmChange and of each action block in document order.
package osmchange
