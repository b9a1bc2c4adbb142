package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
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
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
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
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"info","ts":"2025-10-08T21:01:05.123+0200","logger":"session","caller":"session/controller.go:10","msg":"spreadsheet loaded","run":"abc","document_id":"doc","queries":12}`
	e := Parse(line)

	want := time.Date(2025, 10, 8, 21, 1, 5, 123_000_000, time.FixedZone("", 2*3600))
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if e.Level != "info" || e.Logger != "session" || e.Message != "spreadsheet loaded" {
		t.Fatalf("Parse() = %#v", e)
	}
	wantFields := map[string]any{"document_id": "doc", "queries": float64(12)}
	if !reflect.DeepEqual(e.Fields, wantFields) {
		t.Fatalf("Fields = %#v, want %#v", e.Fields, wantFields)
	}
	if e.Raw != line {
		t.Fatalf("Raw not preserved")
	}
}

func TestParse_NonJSON(t *testing.T) {
	for _, line := range []string{"", "plain text", "{broken"} {
		e := Parse(line)
		if e.Message != line || e.Level != "" {
			t.Fatalf("Parse(%q) = %#v, want raw message", line, e)
		}
		if e.String() != line {
			t.Fatalf("String() = %q, want %q", e.String(), line)
		}
	}
}

func TestEntryString(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name: "full",
			entry: Entry{
				Time:    time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC),
				Level:   "warn",
				Logger:  "session",
				Message: "spreadsheet fetch failed",
				Fields:  map[string]any{"error": "boom", "document_id": "doc"},
			},
			want: "21:01:05 WARN  [session] spreadsheet fetch failed document_id=doc error=boom",
		},
		{
			name:  "no logger",
			entry: Entry{Level: "error", Message: "failed"},
			want:  "ERROR failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAll(t *testing.T) {
	entries := ParseAll([]string{`{"level":"debug","msg":"a"}`, "b"})
	if len(entries) != 2 || entries[0].Message != "a" || entries[1].Message != "b" {
		t.Fatalf("ParseAll() = %#v", entries)
	}
}
