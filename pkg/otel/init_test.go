package otel

import "testing"

func TestTrimScheme(t *testing.T) {
	tests := map[string]string{
		"http://collector:4317":  "collector:4317",
		"https://collector:4317": "collector:4317",
		"collector:4317":         "collector:4317",
	}
	for in, want := range tests {
		if got := trimScheme(in); got != want {
			t.Errorf("trimScheme(%q) = %q, want %q", in, got, want)
		}
	}
}
