package treemap

import "math"

// Rect is a positioned rectangle of a treemap layout.
// X and Y locate the top-left corner; Dx and Dy are width and height.
type Rect struct {
	X, Y   float64
	Dx, Dy float64

	// ID is the input index of the weight this rectangle represents.
	ID int
	// Value is the original (not normalized) weight.
	Value float64
}

// Area returns Dx*Dy.
func (r Rect) Area() float64 { return r.Dx * r.Dy }

// AspectRatio returns max(Dx/Dy, Dy/Dx). A square has ratio 1; a rectangle
// with a zero side has ratio +Inf.
func (r Rect) AspectRatio() float64 { return ratio(r.Dx, r.Dy) }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Dx/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Dy/2 }

// frame is the unfilled part of the canvas the engine is still working on.
type frame struct {
	x, y, dx, dy float64
}

func ratio(w, h float64) float64 {
	if w == 0 || h == 0 {
		return math.Inf(1)
	}
	return math.Max(w/h, h/w)
}
