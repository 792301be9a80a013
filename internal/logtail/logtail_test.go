package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "gobiview.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestLineLevel(t *testing.T) {
	tests := []struct {
		line   string
		want   slog.Level
		wantOK bool
	}{
		{`time=2026-01-02T10:00:00.000Z level=WARN msg="discarding stored view settings"`, slog.LevelWarn, true},
		{`time=2026-01-02T10:00:00.000Z level=DEBUG msg="skipped stale columns"`, slog.LevelDebug, true},
		{`time=2026-01-02T10:00:00.000Z level=ERROR+2 msg=x`, slog.LevelError + 2, true},
		{`gobiview 2026/01/02 10:00:00 poll failed`, 0, false},
		{`level=LOUD msg=x`, 0, false},
	}
	for _, tt := range tests {
		got, ok := LineLevel(tt.line)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("LineLevel(%q) = (%v, %v), want (%v, %v)", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`level=DEBUG msg=a`,
		`level=INFO msg=b`,
		`gobiview 2026/01/02 10:00:00 plain`,
		`level=ERROR msg=c`,
	}
	got := Filter(lines, slog.LevelWarn)
	want := []string{lines[2], lines[3]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
}

func TestColorize_KeepsText(t *testing.T) {
	line := `time=2026-01-02T10:00:00.000Z level=INFO msg=loaded rows=3`
	if got := Colorize(line); !strings.Contains(got, "rows=3") || !strings.Contains(got, "INFO") {
		t.Fatalf("Colorize() = %q, want attributes kept", got)
	}
	plain := "gobiview 2026/01/02 10:00:00 plain"
	if got := Colorize(plain); got != plain {
		t.Fatalf("Colorize(%q) = %q, want unchanged", plain, got)
	}
	if got := ColorizeLines([]string{plain, plain}); len(got) != 2 {
		t.Fatalf("ColorizeLines() returned %d lines, want 2", len(got))
	}
}
