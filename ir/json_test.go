package ir

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		name string
		y    *Node
		want string
	}{
		{"scalars", FromKeyVals([]KeyVal{
			{Key: "b", Val: FromBool(true)},
			{Key: "a", Val: FromInt(-3)},
			{Key: "f", Val: FromFloat(51.5)},
			{Key: "n", Val: Null()},
		}), `{"b":true,"a":-3,"f":51.5,"n":null}`},
		{"time", FromTime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), `"2020-01-01T00:00:00Z"`},
		{"time micros", FromTime(time.Date(2020, 1, 1, 0, 0, 0, 1500, time.UTC)), `"2020-01-01T00:00:00.000001Z"`},
		{"literal", Literal("<b>&</b>"), `"<b>&</b>"`},
		{"unicode", FromString("小智智"), `"小智智"`},
		{"sequence", FromPairs([]KeyVal{
			{Key: "modify", Val: FromKeyVals([]KeyVal{{Key: "@id", Val: FromInt(1)}})},
			{Key: "create", Val: NewObject()},
		}), `[{"modify":{"@id":1}},{"create":{}}]`},
		{"empty list", FromSlice(nil), `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ToJSON(tt.y)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, string(d)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToJSONRejects(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	if _, err := ToJSON(FromTime(time.Date(2020, 1, 1, 0, 0, 0, 0, est))); !errors.Is(err, ErrType) {
		t.Errorf("non-UTC time: got %v", err)
	}
}

func TestFromJSON(t *testing.T) {
	y, err := FromJSON([]byte(`{"z": 1, "a": [1.5, "x", null, false], "m": {}}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, y.Fields); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
	want := FromKeyVals([]KeyVal{
		{Key: "z", Val: FromInt(1)},
		{Key: "a", Val: FromSlice([]*Node{FromFloat(1.5), FromString("x"), Null(), FromBool(false)})},
		{Key: "m", Val: NewObject()},
	})
	if !Equal(y, want) {
		t.Errorf("got %#v, want %#v", y, want)
	}

	for _, bad := range []string{`{"a":}`, `{} {}`, ``} {
		if _, err := FromJSON([]byte(bad)); !errors.Is(err, ErrJSON) {
			t.Errorf("%q: expected ErrJSON, got %v", bad, err)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	y := NewDocument("osm", FromKeyVals([]KeyVal{
		{Key: "@version", Val: FromString("0.6")},
		{Key: "node", Val: FromSlice([]*Node{
			FromKeyVals([]KeyVal{{Key: "@id", Val: FromInt(1)}, {Key: "@lat", Val: FromFloat(51.25)}}),
		})},
	}))
	d, err := y.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var back Node
	if err := back.UnmarshalJSON(d); err != nil {
		t.Fatal(err)
	}
	if !Equal(y, &back) {
		t.Errorf("got %#v, want %#v", &back, y)
	}
}

func TestToYAML(t *testing.T) {
	y := FromKeyVals([]KeyVal{
		{Key: "b", Val: FromInt(1)},
		{Key: "a", Val: FromStrings("x")},
	})
	d, err := ToYAML(y)
	if err != nil {
		t.Fatal(err)
	}
	out := string(d)
	b, a := strings.Index(out, "b: 1"), strings.Index(out, "a:")
	if b < 0 || a < 0 || b > a {
		t.Errorf("field order not kept:\n%s", out)
	}
}

func TestAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"id":   int64(5),
		"tags": []any{"a", "b"},
		"ok":   true,
		"lat":  1.25,
	}
	y, err := FromAny(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToAny(y)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(any(in), out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
