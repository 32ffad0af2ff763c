package layout

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/squarify/pkg/treemap"
)

func TestFromRects(t *testing.T) {
	rects := []treemap.Rect{
		{X: 0, Y: 0, Dx: 4, Dy: 2, ID: 1, Value: 3},
		{X: 0, Y: 2, Dx: 4, Dy: 2, ID: 0, Value: 3},
	}
	l := FromRects(rects, treemap.Canvas{Width: 4, Height: 4}, []string{"alpha", "beta"})

	want := []Rect{
		{ID: 1, Label: "beta", Value: 3, X: 0, Y: 0, Width: 4, Height: 2},
		{ID: 0, Label: "alpha", Value: 3, X: 0, Y: 2, Width: 4, Height: 2},
	}
	if d := cmp.Diff(want, l.Rects); d != "" {
		t.Errorf("Rects mismatch (-want +got):\n%s", d)
	}
	if l.Canvas != (Canvas{Width: 4, Height: 4}) {
		t.Errorf("Canvas = %+v", l.Canvas)
	}
	if l.Stats.Count != 2 || l.Stats.TotalArea != 16 || l.Stats.WorstRatio != 2 {
		t.Errorf("Stats = %+v", l.Stats)
	}
	if !l.Labeled() {
		t.Error("Labeled() = false, want true")
	}
}

func TestFromRectsShortLabels(t *testing.T) {
	rects := []treemap.Rect{{Dx: 1, Dy: 1, ID: 0}, {Dx: 1, Dy: 1, ID: 1}}
	l := FromRects(rects, treemap.Canvas{Width: 2, Height: 1}, []string{"only"})
	if l.Rects[0].Label != "only" || l.Rects[1].Label != "" {
		t.Errorf("labels = %q, %q", l.Rects[0].Label, l.Rects[1].Label)
	}
	unlabeled := FromRects(rects, treemap.Canvas{Width: 2, Height: 1}, nil)
	if unlabeled.Labeled() {
		t.Error("Labeled() = true for nil labels")
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name  string
		rects []Rect
		want  Stats
	}{
		{"empty", nil, Stats{}},
		{"square", []Rect{{Width: 2, Height: 2}}, Stats{Count: 1, WorstRatio: 1, MeanRatio: 1, TotalArea: 4}},
		{"mixed", []Rect{{Width: 1, Height: 4}, {Width: 2, Height: 2}}, Stats{Count: 2, WorstRatio: 4, MeanRatio: 2.5, TotalArea: 8}},
		{"zero area ignored", []Rect{{Width: 3, Height: 1}, {Width: 0, Height: 1}}, Stats{Count: 2, WorstRatio: 3, MeanRatio: 3, TotalArea: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStats(tt.rects); got != tt.want {
				t.Errorf("ComputeStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	values := []float64{6, 6, 4, 3, 2, 2, 1}
	c := treemap.Canvas{Width: 6, Height: 4}
	rects, err := treemap.Layout(values, c)
	if err != nil {
		t.Fatalf("treemap.Layout: %v", err)
	}
	l := FromRects(rects, c, nil)

	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"worst_ratio"`) {
		t.Errorf("Marshal output missing stats:\n%s", data)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d := cmp.Diff(l, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{`},
		{"no canvas", `{"rects":[]}`},
		{"negative canvas", `{"canvas":{"width":-1,"height":1}}`},
		{"duplicate ids", `{"canvas":{"width":1,"height":1},"rects":[{"id":0},{"id":0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); err == nil {
				t.Error("Unmarshal() error = nil, want error")
			}
		})
	}
}

func TestUnmarshalEmptyRects(t *testing.T) {
	l, err := Unmarshal([]byte(`{"canvas":{"width":1,"height":1}}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if l.Rects == nil {
		t.Error("Rects = nil, want empty slice")
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	l := Layout{
		Canvas: Canvas{Width: 10, Height: 5},
		Rects:  []Rect{{ID: 0, Label: "a", Value: 1, Width: 10, Height: 5}},
	}
	l.Stats = ComputeStats(l.Rects)

	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if d := cmp.Diff(l, got); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want not-exist", err)
	}
}
