// Package osmxml converts between XML documents and ir value trees.
//
// Parse and Unparse are thin wrappers over the parse and encode packages
// with the default profile:
//
//	doc, err := osmxml.Parse(body)
//	root, content, err := doc.Root()
//	...
//	out, err := osmxml.Unparse(ir.NewDocument("diffResult", results))
//
// Trees built for responses should name their keys through xattr so the
// same code also serves JSON.
package osmxml

import (
	"github.com/Harvester57/openstreetmap-ng/osmxml/encode"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"
)

// Parse reads one XML document. Errors wrap parse.ErrMalformed or
// parse.ErrInputTooBig.
func Parse(d []byte, opts ...parse.ParseOption) (*ir.Node, error) {
	return parse.Parse(d, opts...)
}

// Unparse writes doc, a mapping with exactly one key, as an XML document.
// Errors wrap encode.ErrMultipleRoots or encode.ErrEncoding.
func Unparse(doc *ir.Node, opts ...encode.EncodeOption) ([]byte, error) {
	return encode.Unparse(doc, opts...)
}

// UnparseString is Unparse returning a string.
func UnparseString(doc *ir.Node, opts ...encode.EncodeOption) (string, error) {
	d, err := encode.Unparse(doc, opts...)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
