package sndisplay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	CANVAS_WIDTH  = 1600
	CANVAS_HEIGHT = 400

	// shapes are rasterized at this factor and downsampled
	SUPERSAMPLING = 2
)

var (
	colorNoData = color.RGBA{255, 255, 255, 255}
	colorInert  = color.RGBA{153, 153, 153, 255}
	colorLine   = color.RGBA{0, 0, 0, 255}
	colorText   = color.RGBA{0, 0, 0, 255}
)

type textAlign int

const (
	alignLeft textAlign = iota
	alignCenter
)

// surface is the fixed size drawing area. Normalized coordinates map to
// pixels with x*width and (1-y)*height so the aspect ratio never changes.
type surface struct {
	img       *image.RGBA
	final     *image.RGBA
	width     int
	height    int
	scale     float64
	omFace    font.Face
	titleFace font.Face
}

func newSurface(width, height, scale int) (*surface, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("error parsing font: %w", err)
	}
	w := width * scale
	h := height * scale
	omFace, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    OM_TEXT_SIZE * float64(h),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating label font: %w", err)
	}
	titleFace, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    TITLE_TEXT_SIZE * float64(h),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating title font: %w", err)
	}
	return &surface{
		img:       image.NewRGBA(image.Rect(0, 0, w, h)),
		final:     image.NewRGBA(image.Rect(0, 0, width, height)),
		width:     w,
		height:    h,
		scale:     float64(scale),
		omFace:    omFace,
		titleFace: titleFace,
	}, nil
}

func (s *surface) px(x float64) float64 { return x * float64(s.width) }
func (s *surface) py(y float64) float64 { return (1 - y) * float64(s.height) }

func (s *surface) clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(colorNoData), image.Point{}, draw.Src)
}

func (s *surface) rect(b Box) image.Rectangle {
	x1 := int(math.Round(s.px(b.X1)))
	x2 := int(math.Round(s.px(b.X2)))
	// y is flipped: Y2 is the top edge
	y1 := int(math.Round(s.py(b.Y2)))
	y2 := int(math.Round(s.py(b.Y1)))
	return image.Rect(x1, y1, x2, y2)
}

// drawBox fills a box and strokes its outline.
func (s *surface) drawBox(b Box, fill color.Color) {
	r := s.rect(b)
	draw.Draw(s.img, r, image.NewUniform(fill), image.Point{}, draw.Src)

	t := int(s.scale)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(s.img, e.Intersect(s.img.Bounds()), image.NewUniform(colorLine), image.Point{}, draw.Src)
	}
}

// drawEllipse fills the interior scanline by scanline, then marks the pixels
// lying within one line width of the boundary.
func (s *surface) drawEllipse(e Ellipse, fill color.Color) {
	cx := s.px(e.X)
	cy := s.py(e.Y)
	rx := e.R1 * float64(s.width)
	ry := e.R2 * float64(s.height)
	if rx <= 0 || ry <= 0 {
		return
	}
	lw := s.scale
	bounds := s.img.Bounds()
	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			if !(image.Point{X: x, Y: y}).In(bounds) {
				continue
			}
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			d := math.Sqrt(dx*dx + dy*dy)
			if d > 1 {
				continue
			}
			// distance to the boundary along the radius, in pixels
			edge := (1 - d) * math.Min(rx, ry)
			if edge < lw {
				s.img.SetRGBA(x, y, colorLine)
			} else {
				s.img.Set(x, y, fill)
			}
		}
	}
}

func (s *surface) drawText(t Text, face font.Face, align textAlign) {
	if t.Label == "" {
		return
	}
	width := font.MeasureString(face, t.Label).Ceil()
	metrics := face.Metrics()

	x := int(math.Round(s.px(t.X)))
	if align == alignCenter {
		x -= width / 2
	}
	// vertically centered on the anchor
	baseline := int(math.Round(s.py(t.Y))) + (metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2

	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(colorText),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)},
	}
	d.DrawString(t.Label)
}

// flush downsamples the supersampled image onto the output surface.
func (s *surface) flush() {
	draw.CatmullRom.Scale(s.final, s.final.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
}

func (s *surface) encode(w io.Writer) error {
	return png.Encode(w, s.final)
}

func (s *surface) save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return &ErrOpenFile{Filename: filename, Err: err}
	}
	if err := s.encode(f); err != nil {
		f.Close()
		return fmt.Errorf("error encoding %s: %w", filename, err)
	}
	return f.Close()
}
