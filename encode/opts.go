package encode

import "github.com/Harvester57/openstreetmap-ng/osmxml/format"

type EncodeOption func(*EncState)

// EncodeFormat selects the output representation. RSS and GPX are written
// as XML.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent puts every child element on its own line, n spaces deeper than
// its parent. Elements carrying text are kept on one line.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
