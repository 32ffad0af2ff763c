package treemap

import "sort"

// Weight is one input value prepared for layout.
type Weight struct {
	// ID is the index of the value in the caller's input, before sorting.
	ID int
	// Value is the original weight.
	Value float64
	// Normalized is Value rescaled into canvas-area units.
	Normalized float64
}

// Normalize sorts values in descending order and rescales each into
// canvas-area units so that the normalized values sum to width*height.
//
// The sort is stable: equal values keep the order they had in the input.
// A sort-ascending-then-reverse approach would instead list ties in reverse
// input order; the resulting tiles differ only in which ID gets which slot.
// The input slice is not modified. If the values sum to zero, the normalized
// values are not finite; use [Layout] to get validation.
func Normalize(values []float64, width, height float64) []Weight {
	return NewDataset(values, width, height).Weights()
}

// Dataset holds the normalized weights of a single computation together
// with the totals they were derived from.
type Dataset struct {
	weights   []Weight
	totalSize float64
	totalArea float64
}

// NewDataset builds a Dataset for values laid out on a width x height canvas.
func NewDataset(values []float64, width, height float64) *Dataset {
	weights := make([]Weight, len(values))
	var total float64
	for i, v := range values {
		weights[i] = Weight{ID: i, Value: v}
		total += v
	}

	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Value > weights[j].Value
	})

	area := width * height
	for i := range weights {
		weights[i].Normalized = weights[i].Value * area / total
	}

	return &Dataset{weights: weights, totalSize: total, totalArea: area}
}

// TotalSize returns the sum of the original values.
func (d *Dataset) TotalSize() float64 { return d.totalSize }

// TotalArea returns the canvas area the values were normalized to.
func (d *Dataset) TotalArea() float64 { return d.totalArea }

// Len returns the number of weights.
func (d *Dataset) Len() int { return len(d.weights) }

// Weights returns a copy of the sorted, normalized weights.
func (d *Dataset) Weights() []Weight {
	out := make([]Weight, len(d.weights))
	copy(out, d.weights)
	return out
}

// Weight returns the i-th weight in sorted order.
func (d *Dataset) Weight(i int) Weight { return d.weights[i] }

// Denormalize converts an area back into original value units.
func (d *Dataset) Denormalize(normalized float64) float64 {
	return normalized * d.totalSize / d.totalArea
}
