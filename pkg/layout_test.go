package sndisplay

import (
	"math"
	"testing"
)

func TestLayoutSizesPositive(t *testing.T) {
	l, err := NewLayout()
	if err != nil {
		t.Fatal(err)
	}
	s := l.Sizes
	for name, v := range map[string]float64{
		"mw_sizex": s.MwX, "mw_sizey": s.MwY,
		"xw_sizex": s.XwX, "xw_sizey": s.XwY,
		"se_sizex": s.SeX, "se_sizey": s.SeY,
		"gg_sizex": s.GgX, "gg_sizey": s.GgY,
	} {
		if v <= 0 {
			t.Errorf("%s = %f, want > 0", name, v)
		}
	}
}

func inUnitSquare(b Box) bool {
	const eps = 1e-9
	return b.X1 >= -eps && b.Y1 >= -eps && b.X2 <= 1+eps && b.Y2 <= 1+eps &&
		b.Width() > 0 && b.Height() > 0
}

func TestLayoutNoOverlap(t *testing.T) {
	l, err := NewLayout()
	if err != nil {
		t.Fatal(err)
	}
	var boxes []Box
	for _, om := range l.TopOMShapes() {
		boxes = append(boxes, om.Box)
	}
	for cellNum := 0; cellNum < N_CELLS; cellNum++ {
		cell, ok := l.CellShape(cellNum)
		if !ok {
			t.Fatalf("no shape for cell %d", cellNum)
		}
		boxes = append(boxes, cell.Box)
	}

	for i, b := range boxes {
		if !inUnitSquare(b) {
			t.Errorf("box %d outside the canvas: %+v", i, b)
		}
		for j := i + 1; j < len(boxes); j++ {
			if b.Overlaps(boxes[j]) {
				t.Fatalf("boxes %d and %d overlap: %+v %+v", i, j, b, boxes[j])
			}
		}
	}

	// title band stays free
	for i, b := range boxes {
		if b.Y2 > 1-SPACER_Y-TITLE_SIZEY+1e-9 {
			t.Errorf("box %d enters the title band: %+v", i, b)
		}
	}
}

func TestLayoutMirroredSides(t *testing.T) {
	l, err := NewLayout()
	if err != nil {
		t.Fatal(err)
	}
	s := l.Sizes
	center := SPACER_Y + s.MwY + GG_LAYERS*s.GgY + s.SeY/2

	for row := 0; row < GG_ROWS; row++ {
		for layer := 0; layer < GG_LAYERS; layer++ {
			n0, _ := EncodeCell(CellID{Side: 0, Row: row, Layer: layer})
			n1, _ := EncodeCell(CellID{Side: 1, Row: row, Layer: layer})
			c0, _ := l.CellShape(n0)
			c1, _ := l.CellShape(n1)
			if math.Abs(c0.Ellipse.X-c1.Ellipse.X) > 1e-12 {
				t.Fatalf("row %d layer %d: x %f != %f", row, layer, c0.Ellipse.X, c1.Ellipse.X)
			}
			if math.Abs((c0.Ellipse.Y-center)+(c1.Ellipse.Y-center)) > 1e-12 {
				t.Fatalf("row %d layer %d not mirrored: y %f and %f around %f",
					row, layer, c0.Ellipse.Y, c1.Ellipse.Y, center)
			}
			if c0.Ellipse.Y <= center || c1.Ellipse.Y >= center {
				t.Fatalf("row %d layer %d on the wrong side of the foil", row, layer)
			}
		}
	}

	// layer 0 is the closest to the foil
	first, _ := l.CellShape(0)
	last, _ := l.CellShape(GG_LAYERS - 1)
	if first.Ellipse.Y >= last.Ellipse.Y {
		t.Errorf("side 0 layers should go away from the foil")
	}
}

func TestLayoutOMShapes(t *testing.T) {
	l, err := NewLayout()
	if err != nil {
		t.Fatal(err)
	}

	// every row of a main wall column shares the box
	a, ok := l.OMShape(68)
	if !ok {
		t.Fatal("no shape for OM 68")
	}
	b, _ := l.OMShape(65)
	if a.Box != b.Box || a.Text.Label != "M:0.5.*" {
		t.Errorf("OM 68 shape %+v, OM 65 shape %+v", a, b)
	}

	// side 0 is drawn above side 1
	s0, _ := l.OMShape(0)
	s1, _ := l.OMShape(MW_COLUMNS * MW_ROWS)
	if s0.Box.Y1 <= s1.Box.Y2 {
		t.Errorf("side 0 main wall should be above side 1")
	}

	xw, ok := l.OMShape(XW_OFFSET)
	if !ok || xw.Text.Label != "X:0.0.0.*" {
		t.Errorf("x-wall shape %+v", xw)
	}

	for omNum := GV_OFFSET; omNum < N_OMS; omNum++ {
		if _, ok := l.OMShape(omNum); ok {
			t.Fatalf("gamma veto %d should not be displayed", omNum)
		}
	}
	for _, n := range []int{-1, N_OMS} {
		if _, ok := l.OMShape(n); ok {
			t.Errorf("OM %d should have no shape", n)
		}
	}
	if _, ok := l.CellShape(N_CELLS); ok {
		t.Errorf("cell %d should have no shape", N_CELLS)
	}
}
