// Package layout defines the serializable form of a computed treemap.
//
// A [Layout] is what the pipeline caches, what the HTTP API returns and
// stores, and what the CLI writes as JSON. It carries the canvas, one
// [Rect] per input weight and summary [Stats]. Struct tags cover both JSON
// and BSON so the same document can be persisted in MongoDB unchanged.
package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/matzehuels/squarify/pkg/treemap"
)

// Layout is a computed treemap ready to be serialized.
type Layout struct {
	// ID is assigned when the layout is stored. Empty for fresh layouts.
	ID string `json:"id,omitempty" bson:"_id,omitempty"`

	Canvas Canvas `json:"canvas" bson:"canvas"`
	Rects  []Rect `json:"rects" bson:"rects"`
	Stats  Stats  `json:"stats" bson:"stats"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// Canvas is the area the rectangles were laid out on.
type Canvas struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Rect is one laid-out weight. ID is the weight's position in the input.
type Rect struct {
	ID     int     `json:"id" bson:"id"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	Value  float64 `json:"value" bson:"value"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// AspectRatio returns max(Width/Height, Height/Width), or 0 for a
// rectangle with a zero side.
func (r Rect) AspectRatio() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return math.Max(r.Width/r.Height, r.Height/r.Width)
}

// Stats summarizes a layout.
type Stats struct {
	Count int `json:"count" bson:"count"`
	// WorstRatio and MeanRatio only consider rectangles with positive area.
	WorstRatio float64 `json:"worst_ratio" bson:"worst_ratio"`
	MeanRatio  float64 `json:"mean_ratio" bson:"mean_ratio"`
	TotalArea  float64 `json:"total_area" bson:"total_area"`
}

// FromRects builds a Layout from engine output. labels is indexed by input
// position and may be shorter than rects or nil.
func FromRects(rects []treemap.Rect, c treemap.Canvas, labels []string) Layout {
	out := make([]Rect, len(rects))
	for i, r := range rects {
		out[i] = Rect{ID: r.ID, Value: r.Value, X: r.X, Y: r.Y, Width: r.Dx, Height: r.Dy}
		if r.ID >= 0 && r.ID < len(labels) {
			out[i].Label = labels[r.ID]
		}
	}
	return Layout{
		Canvas: Canvas{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height},
		Rects:  out,
		Stats:  ComputeStats(out),
	}
}

// ComputeStats derives summary statistics from rects.
func ComputeStats(rects []Rect) Stats {
	s := Stats{Count: len(rects)}
	var sum float64
	var n int
	for _, r := range rects {
		s.TotalArea += r.Area()
		ratio := r.AspectRatio()
		if ratio == 0 {
			continue
		}
		sum += ratio
		n++
		s.WorstRatio = math.Max(s.WorstRatio, ratio)
	}
	if n > 0 {
		s.MeanRatio = sum / float64(n)
	}
	return s
}

// Labeled reports whether any rectangle carries a label.
func (l *Layout) Labeled() bool {
	for _, r := range l.Rects {
		if r.Label != "" {
			return true
		}
	}
	return false
}

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
// The canvas must have a positive size and rectangle IDs must be unique.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Canvas.Width <= 0 || l.Canvas.Height <= 0 {
		return Layout{}, fmt.Errorf("layout canvas must have positive size, got %vx%v", l.Canvas.Width, l.Canvas.Height)
	}
	seen := make(map[int]bool, len(l.Rects))
	for _, r := range l.Rects {
		if seen[r.ID] {
			return Layout{}, fmt.Errorf("duplicate rect id %d", r.ID)
		}
		seen[r.ID] = true
	}
	if l.Rects == nil {
		l.Rects = []Rect{}
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
