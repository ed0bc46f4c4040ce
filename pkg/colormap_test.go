package sndisplay

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		value, min, max float64
		want            int
	}{
		{0, 0, 1, 0},
		{-5, 0, 1, 0},
		{1, 0, 1, 99},
		{2, 0, 1, 99},
		{0.5, 0, 1, 49},
		{0.2, 0, 1, 19},
		{0.85, 0, 1, 84},
		{0.999, 0, 1, 98},
		{150, 100, 200, 49},
		{3, 3, 3, 0},
		{4, 3, 3, 99},
	}
	for _, tt := range tests {
		if got := Normalize(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Normalize(%g, %g, %g) = %d, want %d", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	previous := Normalize(-1, 0, 1)
	for i := 0; i <= 1200; i++ {
		v := -0.1 + float64(i)/1000
		got := Normalize(v, 0, 1)
		if got < previous {
			t.Fatalf("Normalize(%g) = %d after %d", v, got, previous)
		}
		if got < 0 || got >= N_PALETTE_COLORS {
			t.Fatalf("Normalize(%g) = %d outside the palette", v, got)
		}
		previous = got
	}
}

func TestRangeResolve(t *testing.T) {
	var empty Content
	var filled Content
	filled.OM[10] = 3
	filled.Cell[1111] = 0.5
	var negative Content
	negative.OM[3] = -2
	negative.Cell[5] = -0.5

	tests := []struct {
		name     string
		r        Range
		content  *Content
		min, max float64
	}{
		{"auto without data", Range{}, &empty, 0, 1},
		{"auto", Range{}, &filled, 0, 3},
		{"fixed", FixedRange(0, 1), &filled, 0, 1},
		{"fixed min", Range{Min: 0.5, HasMin: true}, &filled, 0.5, 3},
		{"fixed max", Range{Max: 10, HasMax: true}, &filled, 0, 10},
		{"auto with only negative values", Range{}, &negative, 0, 1},
		{"fixed min above data", Range{Min: 5, HasMin: true}, &filled, 5, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := tt.r.Resolve(tt.content)
			if min != tt.min || max != tt.max {
				t.Errorf("Resolve = [%g, %g], want [%g, %g]", min, max, tt.min, tt.max)
			}
		})
	}
}

func TestContentIndices(t *testing.T) {
	var c Content
	if err := c.SetOM(N_OMS, 1); err == nil {
		t.Errorf("SetOM(%d) should fail", N_OMS)
	}
	if err := c.SetCell(-1, 1); err == nil {
		t.Errorf("SetCell(-1) should fail")
	}
	if _, err := c.GetCell(N_CELLS); err == nil {
		t.Errorf("GetCell(%d) should fail", N_CELLS)
	}
	if err := c.SetCell(1111, 0.2); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.GetCell(1111); v != 0.2 {
		t.Errorf("GetCell(1111) = %g", v)
	}
	c.Reset()
	if v, _ := c.GetCell(1111); v != 0 {
		t.Errorf("GetCell(1111) after reset = %g", v)
	}
}
