package treemap

import "math"

// DefaultEpsilon is the default degenerate-frame threshold, relative to the
// sides of the rectangle being filled. It sits a few ulps above float64
// precision, so only frames that rounding has already collapsed are caught.
const DefaultEpsilon = 1e-15

// Squarify lays out weights inside the rectangle (x, y, dx, dy).
//
// Weights must already be normalized to the rectangle's area and sorted in
// descending order of Normalized, as returned by [Normalize]. The result
// holds one [Rect] per weight, in input order.
//
// Squarify does not validate its input. A non-positive rectangle or
// non-finite weights produce degenerate rectangles rather than an error.
func Squarify(weights []Weight, x, y, dx, dy float64) []Rect {
	return squarify(weights, frame{x: x, y: y, dx: dx, dy: dy}, DefaultEpsilon)
}

func squarify(weights []Weight, f frame, eps float64) []Rect {
	rects := make([]Rect, 0, len(weights))

	// Sides at or below these sizes are rounding noise; dividing by them
	// would feed zero or negative sides into the strip arithmetic.
	minDx, minDy := eps*f.dx, eps*f.dy

	var remaining float64
	for _, w := range weights {
		remaining += w.Normalized
	}

	for len(weights) > 0 {
		if len(weights) == 1 {
			rects = append(rects, fill(weights[0], f))
			break
		}
		// Weights are sorted, so a zero head means only zeros are left.
		if f.dx <= minDx || f.dy <= minDy || remaining <= 0 || weights[0].Normalized <= 0 {
			rects = appendTail(rects, weights, f)
			break
		}

		n, covered := nextStrip(weights, f)
		rects = appendStrip(rects, weights[:n], covered, f)
		f = leftover(covered, f)
		remaining -= covered
		weights = weights[n:]
	}
	return rects
}

// nextStrip returns how many leading weights form the next strip and the
// area they cover. The strip grows while the worst aspect ratio does not
// get worse; equal ratios extend it.
func nextStrip(weights []Weight, f frame) (int, float64) {
	first := weights[0].Normalized
	sum, hi, lo := first, first, first
	current := worst(sum, hi, lo, f)

	i := 1
	for i < len(weights) {
		v := weights[i].Normalized
		nextHi, nextLo := math.Max(hi, v), math.Min(lo, v)
		next := worst(sum+v, nextHi, nextLo, f)
		if current < next {
			break
		}
		sum, hi, lo, current = sum+v, nextHi, nextLo, next
		i++
	}
	return i, sum
}

// worst returns the largest aspect ratio among the rectangles of a strip
// covering sum, whose largest and smallest members are hi and lo. The ratio
// of a strip member is quasi-convex in its area, so the extremes bound it.
func worst(sum, hi, lo float64, f frame) float64 {
	if f.dx >= f.dy {
		width := sum / f.dy
		return math.Max(ratio(width, hi/width), ratio(width, lo/width))
	}
	height := sum / f.dx
	return math.Max(ratio(hi/height, height), ratio(lo/height, height))
}

// appendStrip lays out a strip along the short side of f.
func appendStrip(rects []Rect, strip []Weight, covered float64, f frame) []Rect {
	if f.dx >= f.dy {
		width := covered / f.dy
		y := f.y
		for _, w := range strip {
			h := w.Normalized / width
			rects = append(rects, Rect{X: f.x, Y: y, Dx: width, Dy: h, ID: w.ID, Value: w.Value})
			y += h
		}
		return rects
	}

	height := covered / f.dx
	x := f.x
	for _, w := range strip {
		wd := w.Normalized / height
		rects = append(rects, Rect{X: x, Y: f.y, Dx: wd, Dy: height, ID: w.ID, Value: w.Value})
		x += wd
	}
	return rects
}

// leftover returns what remains of f after a strip covering area is removed.
func leftover(covered float64, f frame) frame {
	if f.dx >= f.dy {
		width := covered / f.dy
		return frame{x: f.x + width, y: f.y, dx: f.dx - width, dy: f.dy}
	}
	height := covered / f.dx
	return frame{x: f.x, y: f.y + height, dx: f.dx, dy: f.dy - height}
}

// fill assigns the whole frame to w.
func fill(w Weight, f frame) Rect {
	return Rect{
		X: f.x, Y: f.y,
		Dx: math.Max(f.dx, 0), Dy: math.Max(f.dy, 0),
		ID: w.ID, Value: w.Value,
	}
}

// appendTail handles weights left over once the frame has degenerated: the
// first takes what remains of the frame and the rest collapse to zero-size
// rectangles at its far corner.
func appendTail(rects []Rect, weights []Weight, f frame) []Rect {
	head := fill(weights[0], f)
	rects = append(rects, head)
	for _, w := range weights[1:] {
		rects = append(rects, Rect{X: head.X + head.Dx, Y: head.Y + head.Dy, ID: w.ID, Value: w.Value})
	}
	return rects
}
