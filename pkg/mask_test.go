package sndisplay

import (
	"errors"
	"image/color"
	"testing"
)

func TestCommissioningArea(t *testing.T) {
	tests := []struct {
		area        int
		first, last int
	}{
		{0, 0, 14},
		{3, 42, 56},
		{4, 57, 71},
		{7, 99, 113},
	}
	for _, tt := range tests {
		rows, err := CommissioningArea(tt.area)
		if err != nil {
			t.Fatal(err)
		}
		if rows.First != tt.first || rows.Last != tt.last {
			t.Errorf("area %d: rows %+v, want [%d, %d)", tt.area, rows, tt.first, tt.last)
		}
	}

	for _, area := range []int{-1, 8} {
		var invalid *ErrInvalidMask
		if _, err := CommissioningArea(area); !errors.As(err, &invalid) {
			t.Errorf("area %d: expected ErrInvalidMask, got %v", area, err)
		}
	}
}

func TestCrate(t *testing.T) {
	tests := []struct {
		crate       int
		first, last int
	}{
		{0, 0, 38},
		{1, 38, 75},
		{2, 75, 113},
	}
	for _, tt := range tests {
		rows, err := Crate(tt.crate)
		if err != nil {
			t.Fatal(err)
		}
		if rows.First != tt.first || rows.Last != tt.last {
			t.Errorf("crate %d: rows %+v, want [%d, %d)", tt.crate, rows, tt.first, tt.last)
		}
	}
	if _, err := Crate(3); err == nil {
		t.Errorf("crate 3 should be rejected")
	}
}

func TestMaskOutsideArea0(t *testing.T) {
	d := newTestDemonstrator(t)
	rows, _ := CommissioningArea(0)
	d.MaskOutside(rows)

	for side := 0; side < N_SIDES; side++ {
		for row := 0; row < GG_ROWS; row++ {
			for layer := 0; layer < GG_LAYERS; layer++ {
				cellNum, _ := EncodeCell(CellID{Side: side, Row: row, Layer: layer})
				if masked := d.IsCellMasked(cellNum); masked != (row >= 14) {
					t.Fatalf("cell %d.%d.%d masked = %t", side, row, layer, masked)
				}
			}
		}
	}

	inside, _ := EncodeCell(CellID{Side: 1, Row: 13, Layer: 0})
	insideEmpty, _ := EncodeCell(CellID{Side: 0, Row: 0, Layer: 8})
	outside, _ := EncodeCell(CellID{Side: 1, Row: 14, Layer: 0})
	outsideEmpty, _ := EncodeCell(CellID{Side: 0, Row: 112, Layer: 8})
	d.SetCellContent(inside, 0.5)
	d.SetCellContent(outside, 0.5)
	if err := d.Draw(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cellNum int
		want    color.RGBA
	}{
		{"inside with data", inside, d.palette.ColorAt(Normalize(0.5, 0, 1))},
		{"inside empty", insideEmpty, colorNoData},
		{"outside with data", outside, colorInert},
		{"outside empty", outsideEmpty, colorInert},
	}
	for _, tt := range tests {
		if got := d.CellFill(tt.cellNum); got != tt.want {
			t.Errorf("%s: fill %v, want %v", tt.name, got, tt.want)
		}
	}
}
