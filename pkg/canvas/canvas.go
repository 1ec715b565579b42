// Package canvas defines the drawing surface the stair plan is rendered
// onto. Backends (SVG and DXF through sdfx, PNG through x/image) implement
// Canvas; Recorder keeps strokes in memory.
package canvas

import (
	"fmt"
	"math"

	"github.com/chazu/stairway/pkg/geom"
)

// Layer groups strokes by what they show.
type Layer string

const (
	LayerBoundary  Layer = "boundary"  // inside and outside strings
	LayerWalk      Layer = "walk"      // walkpath
	LayerRadiating Layer = "radiating" // unbalanced step lines
	LayerBalancing Layer = "balancing" // balanced step lines
	LayerOverlap   Layer = "overlap"   // nosing lines
	LayerRiser     Layer = "riser"     // riser board faces
	LayerBack      Layer = "back"      // tread backs at the rabbet
)

// AllLayers returns every layer in drawing order.
func AllLayers() []Layer {
	return []Layer{
		LayerBoundary, LayerWalk, LayerRadiating, LayerBalancing,
		LayerOverlap, LayerRiser, LayerBack,
	}
}

// ParseLayer converts a layer name.
func ParseLayer(s string) (Layer, error) {
	for _, l := range AllLayers() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown layer %q", s)
}

// Stroke is one straight line on a layer.
type Stroke struct {
	Layer Layer    `json:"layer"`
	P0    geom.Vec `json:"p0"`
	P1    geom.Vec `json:"p1"`
}

// Canvas receives plan strokes.
type Canvas interface {
	Line(layer Layer, p0, p1 geom.Vec)
}

// Recorder is a Canvas that keeps every stroke.
type Recorder struct {
	Strokes []Stroke
}

var _ Canvas = (*Recorder)(nil)

// Line records a stroke.
func (r *Recorder) Line(layer Layer, p0, p1 geom.Vec) {
	r.Strokes = append(r.Strokes, Stroke{Layer: layer, P0: p0, P1: p1})
}

// Layer returns the strokes on l.
func (r *Recorder) Layer(l Layer) []Stroke {
	var out []Stroke
	for _, s := range r.Strokes {
		if s.Layer == l {
			out = append(out, s)
		}
	}
	return out
}

// Replay draws strokes onto c in order.
func Replay(c Canvas, strokes []Stroke) {
	for _, s := range strokes {
		c.Line(s.Layer, s.P0, s.P1)
	}
}

// Bounds returns the bounding box of strokes. It reports false for no
// strokes.
func Bounds(strokes []Stroke) (lo, hi geom.Vec, ok bool) {
	if len(strokes) == 0 {
		return geom.Vec{}, geom.Vec{}, false
	}
	lo = geom.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi = geom.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, s := range strokes {
		for _, p := range [2]geom.Vec{s.P0, s.P1} {
			lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
			hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
		}
	}
	return lo, hi, true
}

type filter struct {
	next   Canvas
	layers map[Layer]bool
}

func (f filter) Line(layer Layer, p0, p1 geom.Vec) {
	if f.layers[layer] {
		f.next.Line(layer, p0, p1)
	}
}

// Filter returns a Canvas passing only strokes on layers through to c.
// No layers returns c itself.
func Filter(c Canvas, layers ...Layer) Canvas {
	if len(layers) == 0 {
		return c
	}
	f := filter{next: c, layers: make(map[Layer]bool, len(layers))}
	for _, l := range layers {
		f.layers[l] = true
	}
	return f
}
