package treemap_test

import (
	"fmt"

	"github.com/matzehuels/squarify/pkg/treemap"
)

func ExampleLayout() {
	rects, err := treemap.Layout([]float64{6, 6, 4, 3, 2, 2, 1}, treemap.Canvas{Width: 6, Height: 4})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range rects {
		fmt.Printf("#%d value=%.0f at (%.2f, %.2f) size %.2fx%.2f\n", r.ID, r.Value, r.X, r.Y, r.Dx, r.Dy)
	}
	// Output:
	// #0 value=6 at (0.00, 0.00) size 3.00x2.00
	// #1 value=6 at (0.00, 2.00) size 3.00x2.00
	// #2 value=4 at (3.00, 0.00) size 1.71x2.33
	// #3 value=3 at (4.71, 0.00) size 1.29x2.33
	// #4 value=2 at (3.00, 2.33) size 1.20x1.67
	// #5 value=2 at (4.20, 2.33) size 1.20x1.67
	// #6 value=1 at (5.40, 2.33) size 0.60x1.67
}

func ExampleLayout_invalid() {
	_, err := treemap.Layout([]float64{3, -1}, treemap.Canvas{Width: 10, Height: 10})
	fmt.Println(err)
	// Output:
	// INVALID_WEIGHTS: invalid weights: weight 1 (-1): must not be negative
}

func ExampleNormalize() {
	for _, w := range treemap.Normalize([]float64{1, 3}, 2, 2) {
		fmt.Printf("id=%d value=%.0f area=%.0f\n", w.ID, w.Value, w.Normalized)
	}
	// Output:
	// id=1 value=3 area=3
	// id=0 value=1 area=1
}
