package cli

import (
	"bytes"
	"strings"
	"testing"
)

// captureStdout redirects user-facing output to a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		worst  float64
		cached bool
		want   []string
		absent []string
	}{
		{"fresh", 7, 1.5625, false, []string{"7 rects", "worst ratio 1.56", "fresh"}, []string{"cached"}},
		{"cached", 2, 2, true, []string{"2 rects", "worst ratio 2.00", "cached"}, []string{"fresh"}},
		{"empty", 0, 0, false, []string{"0 rects"}, []string{"worst ratio"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			printStats(tt.count, tt.worst, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("printStats() = %q, missing %q", out.String(), w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(out.String(), a) {
					t.Errorf("printStats() = %q, should not contain %q", out.String(), a)
				}
			}
		})
	}
}

func TestPrintHelpers(t *testing.T) {
	out := captureStdout(t)

	printSuccess("Layout complete: %s", "w.txt")
	printWarning("%s holds no weights", "empty.txt")
	printFile("w.layout.json")
	printKeyValue("Cache", "redis")
	printNextStep("Inspect", "squarify inspect w.layout.json")

	got := out.String()
	for _, want := range []string{
		"Layout complete: w.txt",
		"empty.txt holds no weights",
		"w.layout.json",
		"Cache",
		"redis",
		"squarify inspect w.layout.json",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "\n"); n != 5 {
		t.Errorf("got %d lines, want 5", n)
	}
}
