package parse

import "github.com/Harvester57/openstreetmap-ng/osmxml/ir"

const (
	minSlab = 16
	maxSlab = 1024
)

// slab hands out nodes from chunks that double in size, so a large document
// costs one allocation per chunk instead of one per node.
type slab struct {
	buf  []ir.Node
	size int
}

func (s *slab) node() *ir.Node {
	if len(s.buf) == 0 {
		s.size = min(max(2*s.size, minSlab), maxSlab)
		s.buf = make([]ir.Node, s.size)
	}
	n := &s.buf[0]
	s.buf = s.buf[1:]
	return n
}
