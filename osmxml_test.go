package osmxml

import (
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Harvester57/openstreetmap-ng/osmxml/encode"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"
)

func obj(kvs ...ir.KeyVal) *ir.Node { return ir.FromKeyVals(kvs) }
func list(vs ...*ir.Node) *ir.Node  { return ir.FromSlice(vs) }
func kv(k string, v *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: k, Val: v}
}
func str(s string) *ir.Node { return ir.FromString(s) }

var roundTripDocs = []*ir.Node{
	ir.NewDocument("root", obj(
		kv("key1", list(obj(kv("@attr", str("1"))), obj(kv("@attr", str("2"))))),
		kv("key2", str("text")),
	)),
	ir.NewDocument("root", obj(
		kv("@attr", ir.FromInt(3)),
		kv("#text", str("<span>/user/小智智/traces/10908782</span>")),
	)),
	ir.NewDocument("osm", obj(
		kv("@version", str("0.6")),
		kv("@generator", str("openstreetmap-ng")),
		kv("changeset", obj(
			kv("@id", ir.FromInt(42)),
			kv("@open", ir.FromBool(true)),
			kv("@created_at", ir.FromTime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))),
			kv("tag", list(obj(kv("@k", str("comment")), kv("@v", str("a \"quoted\"\nline")))))),
		),
		kv("discussion", obj(kv("comment", list(obj(kv("text", str("hi"))), obj(kv("text", str("there"))))))),
	)),
	ir.NewDocument("root", str("leaf")),
	ir.NewDocument("root", obj(kv("empty", obj()))),
}

func TestRoundTrip(t *testing.T) {
	for i, doc := range roundTripDocs {
		d, err := Unparse(doc)
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		back, err := Parse(d)
		if err != nil {
			t.Fatalf("%d: %v\n%s", i, err, d)
		}
		if !ir.EqualText(doc, back) {
			t.Errorf("%d: round trip changed document\nwant %#v\ngot  %#v\n%s", i, doc, back, d)
		}
	}
}

func TestParseUnparseStable(t *testing.T) {
	in := `<?xml version='1.0' encoding='UTF-8'?>` + "\n" +
		`<osmChange version="0.6"><modify id="1" version="2"/><create id="-2"><tag k="test" v="zebra"/></create><delete if-unused="true"><node id="3" version="4"/></delete></osmChange>` + "\n"
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := UnparseString(doc)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("got\n%s\nwant\n%s", out, in)
	}
}

func TestErrors(t *testing.T) {
	if _, err := Parse([]byte(`<root>`)); !errors.Is(err, parse.ErrMalformed) {
		t.Errorf("got %v", err)
	}
	if _, err := Unparse(obj(kv("root1", obj()), kv("root2", obj()))); !errors.Is(err, encode.ErrMultipleRoots) {
		t.Errorf("got %v", err)
	}
}

func TestNoLeak(t *testing.T) {
	in := []byte(`<osmChange><modify id="1"/><create id="2"><tag k="test" v="zebra"/></create><modify id="3"/></osmChange>`)
	cycle := func() {
		doc, err := Parse(in)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Unparse(doc); err != nil {
			t.Fatal(err)
		}
		// error paths must release their buffers too
		_, _ = Parse(in[:len(in)-3])
		_, _ = Unparse(ir.NewDocument("root", str("\x00")))
	}

	const rounds, perRound = 4, 2000
	heap := make([]uint64, rounds)
	var ms runtime.MemStats
	for r := range rounds {
		for range perRound {
			cycle()
		}
		runtime.GC()
		runtime.GC()
		runtime.ReadMemStats(&ms)
		heap[r] = ms.HeapAlloc
	}
	growing := true
	for i := 1; i < rounds; i++ {
		if heap[i] <= heap[i-1] {
			growing = false
		}
	}
	// a few KiB of jitter is normal; a leak grows with every cycle
	if growing && heap[rounds-1]-heap[0] > 256<<10 {
		t.Errorf("retained heap grows every round: %v", heap)
	}

	allocs := testing.AllocsPerRun(200, cycle)
	again := testing.AllocsPerRun(200, cycle)
	if again > allocs*1.1+1 {
		t.Errorf("allocations per cycle grew from %.0f to %.0f", allocs, again)
	}
}

func BenchmarkRoundTrip(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(`<osmChange version="0.6">`)
	for i := range 100 {
		sb.WriteString(`<create><node id="-`)
		sb.WriteString(strings.Repeat("1", 1+i%5))
		sb.WriteString(`" lat="1" lon="2" changeset="5"><tag k="name" v="x"/></node></create>`)
	}
	sb.WriteString(`</osmChange>`)
	in := []byte(sb.String())
	b.ReportAllocs()
	for b.Loop() {
		doc, err := Parse(in)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := Unparse(doc); err != nil {
			b.Fatal(err)
		}
	}
}
