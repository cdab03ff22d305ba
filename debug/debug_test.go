package debug

import "testing"

func TestSizeEnv(t *testing.T) {
	tests := []struct {
		val  string
		want int64
	}{
		{"", 7},
		{"32MiB", 32 << 20},
		{"1000", 1000},
		{"lots", 7},
	}
	for _, tt := range tests {
		t.Setenv("OSMXML_TEST_SIZE", tt.val)
		if got := SizeEnv("OSMXML_TEST_SIZE", 7); got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.val, got, tt.want)
		}
	}
}

func TestSize(t *testing.T) {
	if got := Size(50 << 20).String(); got != "50 MiB" {
		t.Errorf("got %q", got)
	}
}
