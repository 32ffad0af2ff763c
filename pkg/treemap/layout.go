package treemap

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/squarify/pkg/errors"
)

// Canvas is the rectangle a layout fills.
type Canvas struct {
	X, Y          float64
	Width, Height float64
}

// Area returns Width*Height.
func (c Canvas) Area() float64 { return c.Width * c.Height }

// Validate reports an INVALID_CANVAS error if the canvas has a non-positive
// side or any non-finite field.
func (c Canvas) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"x", c.X}, {"y", c.Y}, {"width", c.Width}, {"height", c.Height}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errs.New(errs.ErrCodeInvalidCanvas, "canvas %s must be finite, got %v", f.name, f.v)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errs.New(errs.ErrCodeInvalidCanvas, "canvas must have positive size, got %vx%v", c.Width, c.Height)
	}
	if math.IsInf(c.Area(), 0) {
		return errs.New(errs.ErrCodeInvalidCanvas, "canvas area overflows: %vx%v", c.Width, c.Height)
	}
	return nil
}

// WeightError identifies the offending input of an INVALID_WEIGHTS error.
// Index is -1 when the weights are invalid as a whole.
type WeightError struct {
	Index  int
	Value  float64
	Reason string
}

func (e *WeightError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("weight %d (%v): %s", e.Index, e.Value, e.Reason)
}

// ValidateWeights reports an INVALID_WEIGHTS error if any value is negative
// or non-finite, or if a non-empty set sums to zero or overflows.
// The cause of the returned error is a *WeightError.
func ValidateWeights(values []float64) error {
	var total float64
	for i, v := range values {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return invalidWeight(&WeightError{Index: i, Value: v, Reason: "must be finite"})
		case v < 0:
			return invalidWeight(&WeightError{Index: i, Value: v, Reason: "must not be negative"})
		}
		total += v
	}
	if len(values) == 0 {
		return nil
	}
	if total == 0 {
		return invalidWeight(&WeightError{Index: -1, Value: total, Reason: "weights sum to zero"})
	}
	if math.IsInf(total, 0) {
		return invalidWeight(&WeightError{Index: -1, Value: total, Reason: "weights sum overflows"})
	}
	return nil
}

func invalidWeight(cause *WeightError) error {
	return errs.Wrap(errs.ErrCodeInvalidWeights, cause, "invalid weights")
}

// Option configures [Layout].
type Option func(*config)

type config struct {
	eps float64
}

// WithEpsilon sets the size, relative to the canvas sides, at or below which
// a side of the leftover frame is treated as collapsed (default
// [DefaultEpsilon]). Negative values are ignored.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		if eps >= 0 {
			c.eps = eps
		}
	}
}

// Layout validates values and c, then computes a squarified treemap of the
// values on c. It returns one rectangle per value, ordered by descending
// value; Rect.ID refers back to the position in values.
//
// An empty values slice yields an empty result and no error.
func Layout(values []float64, c Canvas, opts ...Option) ([]Rect, error) {
	cfg := config{eps: DefaultEpsilon}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateWeights(values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []Rect{}, nil
	}

	weights := Normalize(values, c.Width, c.Height)
	return squarify(weights, frame{x: c.X, y: c.Y, dx: c.Width, dy: c.Height}, cfg.eps), nil
}
