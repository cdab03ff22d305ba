package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Harvester57/openstreetmap-ng/osmxml/encode"
	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

const mapDoc = `<osm version="0.6"><node id="1" lon="2" lat="3"><tag k="a" v="b"/></node><node id="2" lon="4" lat="5"/></osm>`

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	doc, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestApplyPatch(t *testing.T) {
	ops, err := jsonpatch.DecodePatch([]byte(`[
		{"op": "replace", "path": "/osm/1/node/@id", "value": 7},
		{"op": "add", "path": "/osm/1/node/tag/-", "value": {"@k": "c", "@v": "d"}},
		{"op": "remove", "path": "/osm/2"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := applyPatch(ops, mustParse(t, mapDoc))
	if err != nil {
		t.Fatal(err)
	}
	want := `<osm version="0.6"><node id="7" lon="2" lat="3"><tag k="a" v="b"/><tag k="c" v="d"/></node></osm>`
	if got := encode.MustString(res); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if _, content, _ := res.Root(); content.Type != ir.SequenceType {
		t.Errorf("root content is %s", content.Type)
	}
}

func TestRestoreKeepsLiterals(t *testing.T) {
	orig := ir.NewDocument("note", ir.FromKeyVals([]ir.KeyVal{
		{Key: "@id", Val: ir.FromInt(1)},
		{Key: "text", Val: ir.Literal("a < b")},
	}))
	d, err := ir.ToJSON(orig)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ir.FromJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	got := restore(orig, res)
	if !ir.Equal(got, orig) {
		t.Errorf("got %#v", got)
	}
}

func TestEvalExpr(t *testing.T) {
	doc := mustParse(t, mapDoc)
	tests := []struct {
		src  string
		want *ir.Node
	}{
		{`len(osm.node)`, ir.FromInt(2)},
		{`map(osm.node, {#["@id"]})`, ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
		{`osm["@version"]`, ir.FromString("0.6")},
	}
	for _, tt := range tests {
		got, err := evalExpr(tt.src, doc)
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if !ir.Equal(got, tt.want) {
			t.Errorf("%s: got %#v, want %#v", tt.src, got, tt.want)
		}
	}
	if _, err := evalExpr(`osm.`, doc); err == nil {
		t.Error("expected a compile error")
	}
}

func TestDiffLines(t *testing.T) {
	lines := diffLines("a\nb\nc\n", "a\nx\nc\n")
	var del, ins, eq []string
	for _, l := range lines {
		switch l.op {
		case diffpatch.DiffDelete:
			del = append(del, l.text)
		case diffpatch.DiffInsert:
			ins = append(ins, l.text)
		default:
			eq = append(eq, l.text)
		}
	}
	if diff := cmp.Diff([]string{"b"}, del); diff != "" {
		t.Errorf("deleted (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x"}, ins); diff != "" {
		t.Errorf("inserted (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "c"}, eq); diff != "" {
		t.Errorf("equal (-want +got):\n%s", diff)
	}
	if hasChanges(diffLines("a\n", "a\n")) {
		t.Error("equal inputs reported as changed")
	}

	var buf bytes.Buffer
	if err := writeDiff(&buf, lines, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "-b\n") || !strings.Contains(got, "+x\n") || !strings.Contains(got, " a\n") {
		t.Errorf("got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := &MainConfig{}
	doc := mustParse(t, mapDoc)
	back, err := roundTrip(cfg, doc)
	if err != nil {
		t.Fatal(err)
	}
	a, err := render(doc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := render(back)
	if err != nil {
		t.Fatal(err)
	}
	if hasChanges(diffLines(a, b)) {
		t.Errorf("round trip differs:\n%s\n%s", a, b)
	}
}

func TestSelectXML(t *testing.T) {
	cfg := &MainConfig{}
	matches, err := selectXML([]byte(mapDoc), "//node[@id='2']", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches", len(matches))
	}
	doc, err := cfg.matchDoc(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(doc); got != `<node id="2" lon="4" lat="5"/>` {
		t.Errorf("got %s", got)
	}

	matches, err = selectXML([]byte(mapDoc), "//node", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("first: got %d matches", len(matches))
	}
	matches, err = selectXML([]byte(mapDoc), "//way", false)
	if err != nil || len(matches) != 0 {
		t.Errorf("no match: got %d, %v", len(matches), err)
	}
}

func TestWriteDoc(t *testing.T) {
	list := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
	tests := []struct {
		name string
		cfg  *MainConfig
		in   *ir.Node
		want string
	}{
		{
			name: "document",
			cfg:  &MainConfig{},
			in:   ir.NewDocument("osm", ir.NewObject()),
			want: encode.Declaration,
		},
		{
			name: "list wrapped",
			cfg:  &MainConfig{},
			in:   list,
			want: encode.Declaration + "<result><item>1</item><item>2</item></result>\n",
		},
		{
			name: "scalar wrapped",
			cfg:  &MainConfig{},
			in:   ir.FromString("x"),
			want: encode.Declaration + "<result>x</result>\n",
		},
		{
			name: "json",
			cfg:  &MainConfig{J: true},
			in:   list,
			want: "[1,2]\n",
		},
		{
			name: "yaml",
			cfg:  &MainConfig{Y: true},
			in:   list,
			want: "- 1\n- 2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.cfg.writeDoc(&buf, tt.in); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeDoc(t *testing.T) {
	j := format.JSONFormat
	cfg := &MainConfig{InFormat: &j}
	doc, err := cfg.decodeDoc([]byte(`{"osm":{"@version":"0.6"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(doc); got != `<osm version="0.6"/>` {
		t.Errorf("got %s", got)
	}
	if _, err := (&MainConfig{}).decodeDoc([]byte(`<osm>`)); err == nil {
		t.Error("expected a parse error")
	}
}
