package format

import (
	"context"
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Format
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != f {
			t.Errorf("%s: got %s", f, back)
		}
	}
	_, err := ParseFormat("yaml")
	if !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
	if want := `bad format: "yaml" (want one of xml, json, rss, gpx)`; err.Error() != want {
		t.Errorf("got %q, want %q", err, want)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"/api/0.6/map", XMLFormat},
		{"/api/0.6/node/1", XMLFormat},
		{"/api/0.6/map.json", JSONFormat},
		{"/api/0.6/notes.gpx", GPXFormat},
		{"/api/0.6/notes.rss", RSSFormat},
		{"/api/0.6/notes/feed", RSSFormat},
		{"/api/0.6/notes/feed.xml", XMLFormat},
		{"/api/web/user/1", JSONFormat},
		{"/api/partial/node/1", JSONFormat},
		{"/api/0.7/map.xml", JSONFormat},
		{"/history/feed", RSSFormat},
		{"/node/1", JSONFormat},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Detect(tt.path); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := Lookup(ctx); ok {
		t.Error("unexpected format on empty context")
	}
	if got := FromContext(ctx); got != XMLFormat {
		t.Errorf("default = %s", got)
	}
	jctx := NewContext(ctx, JSONFormat)
	if got := FromContext(jctx); got != JSONFormat {
		t.Errorf("got %s", got)
	}
	if got := FromContext(ctx); got != XMLFormat {
		t.Errorf("parent context changed: %s", got)
	}
}

func TestIsMarkup(t *testing.T) {
	for _, f := range []Format{XMLFormat, RSSFormat, GPXFormat} {
		if !f.IsMarkup() {
			t.Errorf("%s should be markup", f)
		}
	}
	if JSONFormat.IsMarkup() {
		t.Error("json is not markup")
	}
}
