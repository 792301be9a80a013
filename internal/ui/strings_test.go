package ui

import "testing"

func TestFit(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"abcdef", 4, "abc…"},
		{"ab", 4, "ab  "},
		{"abcd", 4, "abcd"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := fit(tt.value, tt.width); got != tt.want {
			t.Fatalf("fit(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("abcdefghij", 5); got != "ab…ij" {
		t.Fatalf("truncateMiddle = %q, want ab…ij", got)
	}
	if got := truncateMiddle("  short  ", 10); got != "short" {
		t.Fatalf("truncateMiddle = %q, want short", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(50, 4, 32); got != 32 {
		t.Fatalf("clamp(50) = %d, want 32", got)
	}
	if got := clamp(1, 4, 32); got != 4 {
		t.Fatalf("clamp(1) = %d, want 4", got)
	}
	if got := clamp(5, 4, 2); got != 4 {
		t.Fatalf("clamp with empty range = %d, want lo", got)
	}
}
