// Package treemap computes squarified treemap layouts.
//
// # Overview
//
// Given a list of non-negative weights and a rectangular canvas, [Layout]
// partitions the canvas into one rectangle per weight. Each rectangle's area
// is proportional to its weight and the algorithm keeps aspect ratios as
// close to 1 as it can, following Bruls, Huizing and van Wijk's squarified
// treemap heuristic.
//
// # Pipeline
//
// A layout is computed in two steps:
//
//  1. [Normalize] sorts weights in descending order (ties keep their original
//     input order) and rescales every value into canvas-area units.
//  2. [Squarify] repeatedly strips a row or column off the remaining
//     rectangle. A strip keeps growing while adding the next weight does not
//     make its worst aspect ratio worse.
//
// Most callers only need [Layout], which validates input and runs both steps:
//
//	rects, err := treemap.Layout([]float64{6, 6, 4, 3, 2, 2, 1}, treemap.Canvas{Width: 6, Height: 4})
//	if err != nil {
//	    return err
//	}
//	for _, r := range rects {
//	    fmt.Printf("#%d (%.0f): %.2f,%.2f %.2fx%.2f\n", r.ID, r.Value, r.X, r.Y, r.Dx, r.Dy)
//	}
//
// # Ordering
//
// Output order is consumption order: descending by weight, not spatial order.
// [Rect.ID] is the index of the weight in the caller's input, so callers can
// map rectangles back to their data.
//
// # Strips
//
// When the remaining rectangle is at least as wide as it is tall, a strip is
// laid out against its left edge with every member sharing one width and the
// members stacked top to bottom. Otherwise the strip is laid out against the
// top edge, members sharing one height and stacked left to right.
//
// # Validation
//
// [Layout] rejects non-positive or non-finite canvases (INVALID_CANVAS) and
// negative, NaN or infinite weights as well as weight sets summing to zero
// (INVALID_WEIGHTS). An empty weight list is valid and yields no rectangles.
//
// # Concurrency
//
// The package holds no global state. Independent calls may run concurrently.
package treemap
