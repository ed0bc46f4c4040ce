package sndisplay

import (
	"fmt"
	"image/color"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const N_PALETTE_COLORS = 100

type paletteStop struct {
	stop    float64
	r, g, b float64
}

var paletteStops = [...]paletteStop{
	{0.00, 0.25, 0.25, 1.00},
	{0.20, 0.00, 0.80, 1.00},
	{0.40, 0.20, 1.00, 0.20},
	{0.60, 1.00, 1.00, 0.00},
	{0.80, 1.00, 0.80, 0.00},
	{1.00, 0.90, 0.00, 0.00},
}

// Palette is the 100 colors ramp shared by every render of the process.
// The table is built once on first use and is read only afterwards.
type Palette struct {
	once  sync.Once
	table [N_PALETTE_COLORS]color.RGBA
}

func NewPalette() *Palette {
	return &Palette{}
}

func (p *Palette) Initialize() {
	p.once.Do(func() {
		for i := 0; i < N_PALETTE_COLORS; i++ {
			t := float64(i) / float64(N_PALETTE_COLORS-1)
			p.table[i] = interpolateStops(t)
		}
	})
}

// ColorAt panics outside [0,99], callers are expected to go through Normalize.
func (p *Palette) ColorAt(index int) color.RGBA {
	if index < 0 || index >= N_PALETTE_COLORS {
		panic(fmt.Sprintf("palette index %d out of range", index))
	}
	p.Initialize()
	return p.table[index]
}

func interpolateStops(t float64) color.RGBA {
	last := len(paletteStops) - 1
	segment := last - 1
	for i := 1; i <= last; i++ {
		if t <= paletteStops[i].stop {
			segment = i - 1
			break
		}
	}
	lo := paletteStops[segment]
	hi := paletteStops[segment+1]
	f := (t - lo.stop) / (hi.stop - lo.stop)

	c1 := colorful.Color{R: lo.r, G: lo.g, B: lo.b}
	c2 := colorful.Color{R: hi.r, G: hi.g, B: hi.b}
	r, g, b := c1.BlendRgb(c2, f).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
