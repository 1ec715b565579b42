// Package raster renders plan strokes to an image with the
// golang.org/x/image/vector rasterizer.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/geom"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Style is how one layer is stroked. Width is in pixels.
type Style struct {
	Color color.RGBA
	Width float64
}

// DefaultStyles maps every layer to its preview style.
var DefaultStyles = map[canvas.Layer]Style{
	canvas.LayerBoundary:  {Color: color.RGBA{0x20, 0x20, 0x20, 0xff}, Width: 2},
	canvas.LayerWalk:      {Color: color.RGBA{0x1f, 0x77, 0xb4, 0xff}, Width: 1.5},
	canvas.LayerRadiating: {Color: color.RGBA{0xbb, 0xbb, 0xbb, 0xff}, Width: 1},
	canvas.LayerBalancing: {Color: color.RGBA{0x00, 0x00, 0x00, 0xff}, Width: 1.5},
	canvas.LayerOverlap:   {Color: color.RGBA{0xd6, 0x27, 0x28, 0xff}, Width: 1},
	canvas.LayerRiser:     {Color: color.RGBA{0x2c, 0xa0, 0x2c, 0xff}, Width: 1},
	canvas.LayerBack:      {Color: color.RGBA{0xff, 0x7f, 0x0e, 0xff}, Width: 1},
}

// Compile-time interface check.
var _ canvas.Canvas = (*PNG)(nil)

// PNG collects strokes and renders them scaled to fit the image, with
// the plan's Y axis pointing up.
type PNG struct {
	Width, Height int
	Margin        int
	Background    color.Color
	Styles        map[canvas.Layer]Style

	rec canvas.Recorder
}

// New returns a white canvas of the given size in pixels.
func New(width, height int) *PNG {
	return &PNG{
		Width:      width,
		Height:     height,
		Margin:     10,
		Background: color.White,
		Styles:     DefaultStyles,
	}
}

// Line records a stroke.
func (p *PNG) Line(layer canvas.Layer, p0, p1 geom.Vec) {
	p.rec.Line(layer, p0, p1)
}

// transform maps plan coordinates to pixels.
type transform struct {
	lo     geom.Vec
	scale  float64
	dx, dy float64
	height float64
}

func (p *PNG) fit() transform {
	lo, hi, ok := canvas.Bounds(p.rec.Strokes)
	if !ok {
		return transform{scale: 1, height: float64(p.Height)}
	}
	w := float64(p.Width - 2*p.Margin)
	h := float64(p.Height - 2*p.Margin)
	spanX, spanY := hi.X-lo.X, hi.Y-lo.Y
	scale := math.Inf(1)
	if spanX > geom.Epsilon {
		scale = w / spanX
	}
	if spanY > geom.Epsilon {
		scale = math.Min(scale, h/spanY)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	return transform{
		lo:     lo,
		scale:  scale,
		dx:     float64(p.Margin) + (w-spanX*scale)/2,
		dy:     float64(p.Margin) + (h-spanY*scale)/2,
		height: float64(p.Height),
	}
}

func (t transform) apply(v geom.Vec) geom.Vec {
	return geom.Vec{
		X: (v.X-t.lo.X)*t.scale + t.dx,
		Y: t.height - ((v.Y-t.lo.Y)*t.scale + t.dy),
	}
}

// Image renders the strokes, layer by layer in canvas.AllLayers order.
func (p *PNG) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	t := p.fit()
	z := vector.NewRasterizer(p.Width, p.Height)
	for _, layer := range canvas.AllLayers() {
		strokes := p.rec.Layer(layer)
		if len(strokes) == 0 {
			continue
		}
		style, ok := p.Styles[layer]
		if !ok {
			style = DefaultStyles[layer]
		}
		z.Reset(p.Width, p.Height)
		for _, s := range strokes {
			quad(z, t.apply(s.P0), t.apply(s.P1), style.Width/2)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(style.Color), image.Point{})
	}
	return img
}

// quad adds the outline of a line of half-width hw from a to b.
func quad(z *vector.Rasterizer, a, b geom.Vec, hw float64) {
	d, ok := geom.Unit(b.Sub(a))
	if !ok {
		return
	}
	n := geom.Perp(d).MulScalar(hw)
	pts := [4]geom.Vec{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, q := range pts[1:] {
		z.LineTo(float32(q.X), float32(q.Y))
	}
	z.ClosePath()
}

// Encode writes the rendered image as PNG.
func (p *PNG) Encode(w io.Writer) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", p.Width, p.Height)
	}
	if err := png.Encode(w, p.Image()); err != nil {
		return fmt.Errorf("raster: encode: %w", err)
	}
	return nil
}

// Save writes the rendered image to a PNG file at path.
func (p *PNG) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := p.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
