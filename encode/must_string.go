package encode

import (
	"strings"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
)

// MustString encodes doc without its declaration and trailing newline,
// panicking on error.
func MustString(doc *ir.Node, opts ...EncodeOption) string {
	d, err := Unparse(doc, opts...)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(strings.TrimPrefix(string(d), Declaration))
}
