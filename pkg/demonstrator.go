package sndisplay

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Demonstrator is one top view display: a static layout recolored from
// the content of the current event.
type Demonstrator struct {
	Name string

	layout  *Layout
	palette *Palette
	surface *surface

	content  Content
	rng      Range
	title    string
	omInert  [N_OMS]bool
	ggInert  [N_CELLS]bool
	omFill   [N_TOP_OM]color.RGBA
	cellFill [N_CELLS]color.RGBA
}

func NewDemonstrator(name string, palette *Palette) (*Demonstrator, error) {
	layout, err := NewLayout()
	if err != nil {
		return nil, err
	}
	if palette == nil {
		palette = NewPalette()
	}
	palette.Initialize()
	d := &Demonstrator{Name: name, layout: layout, palette: palette}
	d.resetFills()
	return d, nil
}

func (d *Demonstrator) Layout() *Layout {
	return d.layout
}

func (d *Demonstrator) Content() *Content {
	return &d.content
}

func (d *Demonstrator) SetRange(min, max float64) {
	d.rng = FixedRange(min, max)
}

func (d *Demonstrator) SetAutoRange() {
	d.rng = Range{}
}

func (d *Demonstrator) SetTitle(title string) {
	d.title = title
}

func (d *Demonstrator) Title() string {
	return d.title
}

// SetOMContent logs an invalid OM number and leaves the content untouched.
func (d *Demonstrator) SetOMContent(omNum int, value float64) error {
	if err := d.content.SetOM(omNum, value); err != nil {
		logger.Error(fmt.Sprintf("*** wrong OM ID: %v", err))
		return err
	}
	return nil
}

func (d *Demonstrator) SetCellContent(cellNum int, value float64) error {
	if err := d.content.SetCell(cellNum, value); err != nil {
		logger.Error(fmt.Sprintf("*** wrong cell ID: %v", err))
		return err
	}
	return nil
}

func (d *Demonstrator) SetCellContentAt(id CellID, value float64) error {
	cellNum, err := EncodeCell(id)
	if err != nil {
		logger.Error(fmt.Sprintf("*** wrong cell ID: %v", err))
		return err
	}
	return d.SetCellContent(cellNum, value)
}

func (d *Demonstrator) CellContent(cellNum int) float64 {
	v, err := d.content.GetCell(cellNum)
	if err != nil {
		logger.Error(fmt.Sprintf("*** wrong cell ID: %v", err))
	}
	return v
}

func (d *Demonstrator) OMContent(omNum int) float64 {
	if omNum < 0 || omNum >= N_OMS {
		return 0
	}
	return d.content.OM[omNum]
}

// MaskCell forces a cell to the inert gray regardless of its content.
func (d *Demonstrator) MaskCell(cellNum int) error {
	if cellNum < 0 || cellNum >= N_CELLS {
		err := &ErrInvalidIndex{Family: "cell", Index: cellNum}
		logger.Error(fmt.Sprintf("*** wrong cell ID: %v", err))
		return err
	}
	d.ggInert[cellNum] = true
	return nil
}

func (d *Demonstrator) MaskOM(omNum int) error {
	if omNum < 0 || omNum >= N_OMS {
		err := &ErrInvalidIndex{Family: "om", Index: omNum}
		logger.Error(fmt.Sprintf("*** wrong OM ID: %v", err))
		return err
	}
	d.omInert[omNum] = true
	return nil
}

// MaskOutside grays every cell, on both sides, whose row is outside rows.
func (d *Demonstrator) MaskOutside(rows RowRange) {
	for side := 0; side < N_SIDES; side++ {
		for row := 0; row < GG_ROWS; row++ {
			if rows.Contains(row) {
				continue
			}
			for layer := 0; layer < GG_LAYERS; layer++ {
				d.ggInert[side*GG_ROWS*GG_LAYERS+row*GG_LAYERS+layer] = true
			}
		}
	}
}

func (d *Demonstrator) IsCellMasked(cellNum int) bool {
	return cellNum >= 0 && cellNum < N_CELLS && d.ggInert[cellNum]
}

// Reset clears the content and the masks. The layout and the drawing
// surface are kept.
func (d *Demonstrator) Reset() {
	d.content.Reset()
	d.omInert = [N_OMS]bool{}
	d.ggInert = [N_CELLS]bool{}
	d.resetFills()
}

func (d *Demonstrator) resetFills() {
	for i := range d.omFill {
		d.omFill[i] = colorNoData
	}
	for i := range d.cellFill {
		d.cellFill[i] = colorNoData
	}
}

// OMFill returns the fill of the top view box showing omNum, as computed
// by the last Draw.
func (d *Demonstrator) OMFill(omNum int) (color.RGBA, bool) {
	id, err := DecodeOM(omNum)
	if err != nil {
		return color.RGBA{}, false
	}
	top, ok := topOMIndex(id)
	if !ok {
		return color.RGBA{}, false
	}
	return d.omFill[top], true
}

func (d *Demonstrator) CellFill(cellNum int) color.RGBA {
	if cellNum < 0 || cellNum >= N_CELLS {
		return colorNoData
	}
	return d.cellFill[cellNum]
}

func (d *Demonstrator) fill(value float64, inert bool, min, max float64) color.RGBA {
	switch {
	case inert:
		return colorInert
	case value == 0:
		return colorNoData
	default:
		return d.palette.ColorAt(Normalize(value, min, max))
	}
}

// update computes the fill of every shape for the current session.
func (d *Demonstrator) update() {
	min, max := d.rng.Resolve(&d.content)
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Z range = [%f, %f] for '%s'", min, max, d.Name)
		logger.Info(message, "demonstrator")
	}

	var boxValue [N_TOP_OM]float64
	var boxHasData [N_TOP_OM]bool
	var boxInert [N_TOP_OM]bool
	for omNum := 0; omNum < GV_OFFSET; omNum++ {
		id, _ := DecodeOM(omNum)
		top, _ := topOMIndex(id)
		if d.omInert[omNum] {
			boxInert[top] = true
		}
		v := d.content.OM[omNum]
		if v == 0 {
			continue
		}
		if !boxHasData[top] || v > boxValue[top] {
			boxValue[top] = v
			boxHasData[top] = true
		}
	}
	for top := range d.omFill {
		d.omFill[top] = d.fill(boxValue[top], boxInert[top], min, max)
	}

	for cellNum := range d.cellFill {
		d.cellFill[cellNum] = d.fill(d.content.Cell[cellNum], d.ggInert[cellNum], min, max)
	}
}

// Draw recolors the layout and renders it. The surface is created on the
// first call and reused afterwards.
func (d *Demonstrator) Draw() error {
	d.update()

	if d.surface == nil {
		s, err := newSurface(CANVAS_WIDTH, CANVAS_HEIGHT, SUPERSAMPLING)
		if err != nil {
			return err
		}
		d.surface = s
	}
	s := d.surface
	s.clear()

	for top, shape := range d.layout.TopOMShapes() {
		s.drawBox(shape.Box, d.omFill[top])
		s.drawText(shape.Text, s.omFace, alignCenter)
	}

	for cellNum := 0; cellNum < N_CELLS; cellNum++ {
		shape := d.layout.cells[cellNum]
		s.drawBox(shape.Box, colorNoData)
		s.drawEllipse(shape.Ellipse, d.cellFill[cellNum])
	}

	title := d.layout.Title()
	title.Label = d.title
	s.drawText(title, s.titleFace, alignLeft)

	s.flush()
	return nil
}

// Image returns the last rendered image, nil before the first Draw.
func (d *Demonstrator) Image() image.Image {
	if d.surface == nil {
		return nil
	}
	return d.surface.final
}

func (d *Demonstrator) WritePNG(w io.Writer) error {
	if d.surface == nil {
		if err := d.Draw(); err != nil {
			return err
		}
	}
	return d.surface.encode(w)
}

func (d *Demonstrator) SavePNG(filename string) error {
	if d.surface == nil {
		if err := d.Draw(); err != nil {
			return err
		}
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Saving %s", filename), "demonstrator")
	}
	return d.surface.save(filename)
}

func (d *Demonstrator) SetDisplayRange(r Range) {
	d.rng = r
}
