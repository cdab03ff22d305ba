package ir

import (
	"errors"
	"testing"
)

func TestAddGroups(t *testing.T) {
	y := NewObject()
	y.Add("key1", FromString("a"))
	if got := y.Get("key1"); got.Type != StringType {
		t.Fatalf("first occurrence should be stored as is, got %s", got.Type)
	}
	y.Add("key2", FromString("b"))
	y.Add("key1", FromString("c"))
	y.Add("key1", FromString("d"))

	want := FromKeyVals([]KeyVal{
		{Key: "key1", Val: FromStrings("a", "c", "d")},
		{Key: "key2", Val: FromString("b")},
	})
	if !Equal(y, want) {
		t.Errorf("got %#v, want %#v", y, want)
	}
	if y.Fields[0] != "key1" || y.Fields[1] != "key2" {
		t.Errorf("first-occurrence order lost: %v", y.Fields)
	}
}

func TestSetAndDelete(t *testing.T) {
	y := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromInt(1)},
		{Key: "b", Val: FromInt(2)},
		{Key: "a", Val: FromInt(3)},
	})
	if y.Len() != 2 {
		t.Fatalf("repeated key should replace, got len %d", y.Len())
	}
	if got := y.Get("a").Int; got != 3 {
		t.Errorf("a = %d, want 3", got)
	}
	y.Delete("a")
	if y.Has("a") || y.Len() != 1 {
		t.Errorf("delete failed: %#v", y)
	}

	seq := FromPairs(nil)
	seq.Set("modify", NewObject())
	seq.Set("modify", NewObject())
	if seq.Len() != 2 {
		t.Errorf("sequence Set should append, got len %d", seq.Len())
	}
	seq.Delete("modify")
	if seq.Len() != 0 {
		t.Errorf("sequence Delete should remove every pair, got len %d", seq.Len())
	}
}

func TestRoot(t *testing.T) {
	doc := NewDocument("osm", NewObject())
	root, content, err := doc.Root()
	if err != nil {
		t.Fatal(err)
	}
	if root != "osm" || content.Type != ObjectType {
		t.Errorf("got %q %s", root, content.Type)
	}

	bad := []*Node{
		nil,
		FromString("x"),
		NewObject(),
		FromKeyVals([]KeyVal{{Key: "root1", Val: NewObject()}, {Key: "root2", Val: NewObject()}}),
	}
	for _, b := range bad {
		if _, _, err := b.Root(); !errors.Is(err, ErrNotDocument) {
			t.Errorf("%#v: expected ErrNotDocument, got %v", b, err)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		y    *Node
		want string
	}{
		{FromString("text"), "text"},
		{Literal("cdata"), "cdata"},
		{FromKeyVals([]KeyVal{{Key: "@attr", Val: FromString("2")}, {Key: TextKey, Val: FromString("text2")}}), "text2"},
		{NewObject(), ""},
		{FromInt(1), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := tt.y.Text(); got != tt.want {
			t.Errorf("%#v.Text() = %q, want %q", tt.y, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	y := NewDocument("root", FromKeyVals([]KeyVal{
		{Key: "tag", Val: FromSlice([]*Node{FromString("a")})},
	}))
	c := y.Clone()
	c.Values[0].Get("tag").Push(FromString("b"))
	if y.Values[0].Get("tag").Len() != 1 {
		t.Error("clone shares structure with original")
	}
}

func TestAttrHelpers(t *testing.T) {
	if !IsAttr("@id") || IsAttr("id") {
		t.Error("IsAttr")
	}
	if AttrName("@id") != "id" {
		t.Error("AttrName")
	}
	y := FromKeyVals([]KeyVal{{Key: "@id", Val: FromInt(1)}})
	if y.Attr("id").Int != 1 {
		t.Error("Attr")
	}
}
