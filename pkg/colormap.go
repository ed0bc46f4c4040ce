package sndisplay

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Range is the value range of a render. Bounds not set explicitly are
// computed from the content.
type Range struct {
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

func FixedRange(min, max float64) Range {
	return Range{Min: min, Max: max, HasMin: true, HasMax: true}
}

// Normalize maps a value to a palette index in [0,99].
func Normalize(value, min, max float64) int {
	if value <= min {
		return 0
	}
	if value >= max {
		return N_PALETTE_COLORS - 1
	}
	index := int(math.Floor(float64(N_PALETTE_COLORS-1) * (value - min) / (max - min)))
	if index < 0 {
		return 0
	}
	if index >= N_PALETTE_COLORS {
		return N_PALETTE_COLORS - 1
	}
	return index
}

// Resolve returns the effective bounds for a content snapshot. The
// automatic minimum is zero, the automatic maximum is the largest non-zero
// value, or min+1 without any data or when that value is not above min.
func (r Range) Resolve(c *Content) (float64, float64) {
	min := 0.0
	if r.HasMin {
		min = r.Min
	}
	if r.HasMax {
		return min, r.Max
	}
	max := min + 1
	if values := nonZero(c); len(values) > 0 {
		if m := floats.Max(values); m > min {
			max = m
		}
	}
	return min, max
}

func nonZero(c *Content) []float64 {
	values := make([]float64, 0)
	for _, v := range c.OM {
		if v != 0 {
			values = append(values, v)
		}
	}
	for _, v := range c.Cell {
		if v != 0 {
			values = append(values, v)
		}
	}
	return values
}
