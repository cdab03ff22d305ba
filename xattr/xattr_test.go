package xattr

import (
	"context"
	"testing"

	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
)

func TestProjector(t *testing.T) {
	tests := []struct {
		f                          format.Format
		attr, attrAs, elem, elemAs string
	}{
		{format.XMLFormat, "@test", "@test_value", "test", "test_value"},
		{format.GPXFormat, "@test", "@test_value", "test", "test_value"},
		{format.JSONFormat, "test", "test", "test", "test"},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			p := For(format.NewContext(context.Background(), tt.f))
			if got := p.Attr("test"); got != tt.attr {
				t.Errorf("Attr = %q, want %q", got, tt.attr)
			}
			if got := p.AttrAs("test", "test_value"); got != tt.attrAs {
				t.Errorf("AttrAs = %q, want %q", got, tt.attrAs)
			}
			if got := p.Elem("test"); got != tt.elem {
				t.Errorf("Elem = %q, want %q", got, tt.elem)
			}
			if got := p.ElemAs("test", "test_value"); got != tt.elemAs {
				t.Errorf("ElemAs = %q, want %q", got, tt.elemAs)
			}
			if p.IsJSON() != tt.f.IsJSON() {
				t.Errorf("IsJSON = %t", p.IsJSON())
			}
		})
	}
}

func TestAttrAsEmptyFallsBack(t *testing.T) {
	p := ForFormat(format.XMLFormat)
	if got := p.AttrAs("id", ""); got != "@id" {
		t.Errorf("got %q", got)
	}
	if got := p.ElemAs("tag", ""); got != "tag" {
		t.Errorf("got %q", got)
	}
}

func TestPerRequest(t *testing.T) {
	bg := context.Background()
	x := For(format.NewContext(bg, format.XMLFormat))
	j := For(format.NewContext(bg, format.JSONFormat))
	if x.Attr("id") == j.Attr("id") {
		t.Error("projectors for different requests should not share state")
	}
}
