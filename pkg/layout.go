package sndisplay

import "fmt"

// Top view geometry, in normalized coordinates (origin bottom left)
const (
	SPACER_X    = 0.005
	SPACER_Y    = 0.025
	TITLE_SIZEY = 0.0615

	// x-wall height relative to a main wall module
	XW_HEIGHT_RATIO = 1.035
	// separation foil band relative to a main wall module
	SE_HEIGHT_RATIO = 0.125
	// half x-wall width relative to a main wall module
	XW_WIDTH_RATIO = 0.720

	N_TOP_MW = N_SIDES * MW_COLUMNS
	N_TOP_XW = N_SIDES * XW_WALLS * XW_COLUMNS
	N_TOP_OM = N_TOP_MW + N_TOP_XW

	OM_TEXT_SIZE    = 0.032
	TITLE_TEXT_SIZE = 0.056
)

type Box struct {
	X1, Y1, X2, Y2 float64
}

func (b Box) Width() float64  { return b.X2 - b.X1 }
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

func (b Box) Overlaps(o Box) bool {
	const eps = 1e-12
	return b.X1 < o.X2-eps && o.X1 < b.X2-eps && b.Y1 < o.Y2-eps && o.Y1 < b.Y2-eps
}

type Ellipse struct {
	X, Y   float64
	R1, R2 float64
}

type Text struct {
	X, Y  float64
	Size  float64
	Label string
}

// OMShape is one box of the top view. All rows of a column share it.
type OMShape struct {
	Box  Box
	Text Text
}

type CellShape struct {
	Box     Box
	Ellipse Ellipse
}

type LayoutSizes struct {
	MwX, MwY float64
	XwX, XwY float64
	SeX, SeY float64
	GgX, GgY float64
}

// Layout is the static top view of the demonstrator. It is computed once
// and only recolored afterwards.
type Layout struct {
	Sizes LayoutSizes
	oms   [N_TOP_OM]OMShape
	cells [N_CELLS]CellShape
	title Text
}

func computeSizes() LayoutSizes {
	var s LayoutSizes
	s.MwY = (1 - 2*SPACER_Y - TITLE_SIZEY) / (2.0 + 4*XW_HEIGHT_RATIO + SE_HEIGHT_RATIO)
	s.XwY = XW_HEIGHT_RATIO * s.MwY
	s.SeY = SE_HEIGHT_RATIO * s.MwY
	s.GgY = (1 - 2*SPACER_Y - TITLE_SIZEY - 2*s.MwY - s.SeY) / float64(2*GG_LAYERS)

	s.MwX = (1 - 2*SPACER_X) / (MW_COLUMNS + 2*0.5*XW_WIDTH_RATIO)
	s.XwX = 1 - 2*SPACER_X - MW_COLUMNS*s.MwX
	s.SeX = 1 - 2*SPACER_X - 2*s.XwX
	s.GgX = s.SeX / GG_ROWS
	return s
}

func NewLayout() (*Layout, error) {
	s := computeSizes()
	sizes := []float64{s.MwX, s.MwY, s.XwX, s.XwY, s.SeX, s.SeY, s.GgX, s.GgY}
	for i, v := range sizes {
		if v <= 0 {
			return nil, fmt.Errorf("layout size %d is not positive: %f", i, v)
		}
	}

	l := &Layout{Sizes: s}

	for side := 0; side < N_SIDES; side++ {
		for column := 0; column < MW_COLUMNS; column++ {
			x1 := SPACER_X + 0.5*s.XwX + float64(column)*s.MwX
			y1 := SPACER_Y + float64(1-side)*(s.MwY+4*s.XwY+s.SeY)
			box := Box{X1: x1, Y1: y1, X2: x1 + s.MwX, Y2: y1 + s.MwY}
			l.oms[side*MW_COLUMNS+column] = OMShape{
				Box: box,
				Text: Text{
					X:     x1 + 0.5*s.MwX,
					Y:     y1 + 0.667*s.MwY,
					Size:  OM_TEXT_SIZE,
					Label: fmt.Sprintf("M:%1d.%d.*", side, column),
				},
			}
		}
	}

	for side := 0; side < N_SIDES; side++ {
		for wall := 0; wall < XW_WALLS; wall++ {
			for column := 0; column < XW_COLUMNS; column++ {
				x1 := SPACER_X + float64(wall)*(s.XwX+GG_ROWS*s.GgX)
				y1 := SPACER_Y + s.MwY
				if side == 0 {
					y1 += 2*s.XwY + s.SeY + float64(column)*s.XwY
				} else {
					y1 += float64(1-column) * s.XwY
				}
				box := Box{X1: x1, Y1: y1, X2: x1 + s.XwX, Y2: y1 + s.XwY}
				l.oms[topXWIndex(side, wall, column)] = OMShape{
					Box: box,
					Text: Text{
						X:     x1 + 0.5*s.XwX,
						Y:     y1 + 0.6*s.XwY,
						Size:  OM_TEXT_SIZE,
						Label: fmt.Sprintf("X:%1d.%1d.%1d.*", side, wall, column),
					},
				}
			}
		}
	}

	for side := 0; side < N_SIDES; side++ {
		for row := 0; row < GG_ROWS; row++ {
			for layer := 0; layer < GG_LAYERS; layer++ {
				x1 := SPACER_X + s.XwX + float64(row)*s.GgX
				y1 := SPACER_Y + s.MwY
				// side 1 is mirrored below the separation band
				if side == 0 {
					y1 += GG_LAYERS*s.GgY + s.SeY + float64(layer)*s.GgY
				} else {
					y1 += float64(GG_LAYERS-1-layer) * s.GgY
				}
				x2 := x1 + s.GgX
				y2 := y1 + s.GgY
				cellNum := side*GG_ROWS*GG_LAYERS + row*GG_LAYERS + layer
				l.cells[cellNum] = CellShape{
					Box:     Box{X1: x1, Y1: y1, X2: x2, Y2: y2},
					Ellipse: Ellipse{X: (x1 + x2) / 2, Y: (y1 + y2) / 2, R1: s.GgX / 2, R2: s.GgY / 2},
				}
			}
		}
	}

	l.title = Text{X: SPACER_X, Y: 1 - TITLE_SIZEY*3/4, Size: TITLE_TEXT_SIZE}
	return l, nil
}

func topXWIndex(side, wall, column int) int {
	return N_TOP_MW + side*XW_WALLS*XW_COLUMNS + wall*XW_COLUMNS + column
}

// topOMIndex projects an OM onto its top view box. Gamma veto modules are
// not part of the top view.
func topOMIndex(id OmID) (int, bool) {
	switch om := id.(type) {
	case MainWallID:
		return om.Side*MW_COLUMNS + om.Column, true
	case XWallID:
		return topXWIndex(om.Side, om.Wall, om.Column), true
	}
	return -1, false
}

// OMShape returns the top view box of a flat OM number.
func (l *Layout) OMShape(omNum int) (OMShape, bool) {
	id, err := DecodeOM(omNum)
	if err != nil {
		return OMShape{}, false
	}
	top, ok := topOMIndex(id)
	if !ok {
		return OMShape{}, false
	}
	return l.oms[top], true
}

func (l *Layout) CellShape(cellNum int) (CellShape, bool) {
	if cellNum < 0 || cellNum >= N_CELLS {
		return CellShape{}, false
	}
	return l.cells[cellNum], true
}

func (l *Layout) TopOMShapes() []OMShape {
	return l.oms[:]
}

func (l *Layout) Title() Text {
	return l.title
}
