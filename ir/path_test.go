package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pathTest struct {
	Path  string
	Doc   string
	Res   string
	NoGet bool
}

var pathTests = []pathTest{
	{
		Path: "$",
		Doc:  "null",
		Res:  "null",
	},
	{
		Path: "$.f",
		Doc:  `{"f": 1}`,
		Res:  "1",
	},
	{
		Path: "$[0]",
		Doc:  "[1,2,3]",
		Res:  "1",
	},
	{
		Path: "$",
		Doc:  "[1,2,3]",
		Res:  "[1,2,3]",
	},
	{
		Path: "$[1].f",
		Doc:  `[0, {"f": 2, "g": 3}]`,
		Res:  "2",
	},
	{
		Path: "$.f[3]",
		Doc:  `{"a": [1,2], "f": [0,1,2,"three"]}`,
		Res:  `"three"`,
	},
	{
		Path: "$.'f[3]'[2]",
		Doc:  `{"a": [1,2], "f[3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		Path: "$.'$f[\\'3]'[2]",
		Doc:  `{"a": [1,2], "$f['3]": [0,1,2,"three"]}`,
		Res:  "2",
	},
	{
		Path: "$.osm.node[0].'@id'",
		Doc:  `{"osm": {"node": [{"@id": 5}]}}`,
		Res:  "5",
	},
	{
		NoGet: true,
		Path:  "$[*]",
		Doc:   "[1,2,3]",
		Res:   "[1,2,3]",
	},
	{
		NoGet: true,
		Path:  "$.a[*]",
		Doc:   `{"b": [1,2,3]}`,
		Res:   "[]",
	},
	{
		NoGet: true,
		Path:  "$.b[*]",
		Doc:   `{"b": [1,2,3]}`,
		Res:   "[1,2,3]",
	},
	{
		NoGet: true,
		Path:  "$.c.d.a",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   "[]",
	},
	{
		NoGet: true,
		Path:  "$...a",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   `["b",3]`,
	},
	{
		NoGet: true,
		Path:  "$.c...a",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   "[3]",
	},
	{
		NoGet: true,
		Path:  "$.c...x",
		Doc:   `{"a": "b", "c": {"d": 2, "a": 3}}`,
		Res:   "[]",
	},
}

func mustJSON(t *testing.T, y *Node) string {
	t.Helper()
	d, err := ToJSON(y)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestPathGet(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		if pathTest.NoGet {
			continue
		}
		node, err := FromJSON([]byte(pathTest.Doc))
		if err != nil {
			t.Errorf("# doc\n%s\n---\n# %v\n", pathTest.Doc, err)
			continue
		}
		res, err := node.GetPath(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		pp, err := ParsePath(pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		t.Logf("got path %q -> %q", pathTest.Path, pp.String())

		if res == nil {
			t.Error("no result")
			continue
		}
		if out := mustJSON(t, res); out != pathTest.Res {
			t.Errorf("got %q want %q", out, pathTest.Res)
		}
	}
}

func TestPathList(t *testing.T) {
	for i := range pathTests {
		pathTest := &pathTests[i]
		in, err := FromJSON([]byte(pathTest.Doc))
		if err != nil {
			t.Errorf("# doc\n%s\n---\n# %v\n", pathTest.Doc, err)
			continue
		}
		if !pathTest.NoGet {
			get, err := in.GetPath(pathTest.Path)
			if err != nil {
				t.Error(err)
			}
			lst, err := in.ListPath(nil, pathTest.Path)
			if err != nil {
				t.Error(err)
				continue
			}
			if len(lst) != 1 {
				t.Errorf("listed %d: %s for %q", len(lst), pathTest.Path, pathTest.Doc)
				continue
			}
			if gs, ls := mustJSON(t, get), mustJSON(t, lst[0]); gs != ls {
				t.Errorf("# get\n%s\n---\n# lst\n%s", gs, ls)
			}
			continue
		}
		lst, err := in.ListPath(nil, pathTest.Path)
		if err != nil {
			t.Error(err)
			continue
		}
		if ls := mustJSON(t, FromSlice(lst)); ls != pathTest.Res {
			t.Errorf("# list gave\n%s\n---\n# want\n%s", ls, pathTest.Res)
		}
	}
}

func TestPathSequence(t *testing.T) {
	doc := NewDocument("osmChange", FromPairs([]KeyVal{
		{Key: "create", Val: FromKeyVals([]KeyVal{{Key: "@id", Val: FromInt(1)}})},
		{Key: "modify", Val: FromKeyVals([]KeyVal{{Key: "@id", Val: FromInt(2)}})},
		{Key: "create", Val: FromKeyVals([]KeyVal{{Key: "@id", Val: FromInt(3)}})},
	}))
	got, err := doc.GetPath("$.osmChange[1].'@id'")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Int != 2 {
		t.Errorf("got %#v", got)
	}
	lst, err := doc.ListPath(nil, "$.osmChange.create.'@id'")
	if err != nil {
		t.Fatal(err)
	}
	if s := mustJSON(t, FromSlice(lst)); s != "[1,3]" {
		t.Errorf("got %s", s)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{"", "a", "$.", "$[", "$[x]", "$[-1]", "$.[0]", "$.'open", "$x"} {
		if _, err := ParsePath(p); err == nil {
			t.Errorf("%q: expected error", p)
		}
	}
}

func TestPathString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"$", "$"},
		{"$.osm.node[0].'@id'", "$.osm.node[0].@id"},
		{"$.'a.b'[*]...x", "$.'a.b'[*]...x"},
		{`$.'it\'s'`, `$.'it\'s'`},
		{"$..[2]", "$..[2]"},
	}
	for _, tt := range tests {
		p, err := ParsePath(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if got := p.String(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.in, got, tt.want)
		}
		back, err := ParsePath(p.String())
		if err != nil {
			t.Errorf("%s: reparse: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(p, back, cmp.AllowUnexported(step{})); diff != "" {
			t.Errorf("%s: reparse mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
