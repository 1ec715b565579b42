// Package sketch turns a computed stair into plan strokes. One pass walks
// the boundary curves and every step set and emits them on their layers.
package sketch

import (
	"math"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/geom"
	"github.com/chazu/stairway/pkg/plan"
	"github.com/chazu/stairway/pkg/stair"
)

// DefaultChord is the longest chord used to flatten arcs, in mm.
const DefaultChord = 20.0

// Options selects what is drawn.
type Options struct {
	Layers []canvas.Layer // empty means all layers
	Chord  float64        // arc flattening chord; <= 0 means DefaultChord
}

func (o Options) enabled() map[canvas.Layer]bool {
	layers := o.Layers
	if len(layers) == 0 {
		layers = canvas.AllLayers()
	}
	m := make(map[canvas.Layer]bool, len(layers))
	for _, l := range layers {
		m[l] = true
	}
	return m
}

// Draw emits the plan of res on b onto c.
func Draw(c canvas.Canvas, res *stair.Result, b *plan.Boundaries, opts Options) {
	on := opts.enabled()
	chord := opts.Chord
	if chord <= 0 {
		chord = DefaultChord
	}

	if b != nil {
		if on[canvas.LayerBoundary] {
			curve(c, canvas.LayerBoundary, b.Inside, chord)
			curve(c, canvas.LayerBoundary, b.Outside, chord)
		}
		if on[canvas.LayerWalk] {
			curve(c, canvas.LayerWalk, b.Walk, chord)
		}
	}
	if res == nil {
		return
	}

	sets := []struct {
		layer canvas.Layer
		set   *stair.StepSet
	}{
		{canvas.LayerRadiating, res.Radiating.Base},
		{canvas.LayerBalancing, res.Balancing.Base},
		{canvas.LayerOverlap, res.Balancing.Overlap},
		{canvas.LayerRiser, res.Balancing.Riser},
		{canvas.LayerBack, res.Balancing.Back},
	}
	for _, s := range sets {
		if on[s.layer] && s.set != nil {
			steps(c, s.layer, s.set)
		}
	}
}

// Strokes draws onto a recorder and returns its strokes.
func Strokes(res *stair.Result, b *plan.Boundaries, opts Options) []canvas.Stroke {
	var rec canvas.Recorder
	Draw(&rec, res, b, opts)
	return rec.Strokes
}

func steps(c canvas.Canvas, layer canvas.Layer, set *stair.StepSet) {
	for _, i := range set.Indices() {
		if l, ok := set.Line(i); ok {
			c.Line(layer, l.P0, l.P1)
		}
	}
}

// curve flattens cv into strokes. Lines are drawn as they are; other
// segments are split so no chord is longer than chord.
func curve(c canvas.Canvas, layer canvas.Layer, cv *geom.Curve, chord float64) {
	if cv == nil {
		return
	}
	for _, seg := range cv.Segments() {
		if l, ok := seg.(geom.Line); ok {
			c.Line(layer, l.P0, l.P1)
			continue
		}
		n := max(1, int(math.Ceil(seg.Length()/chord)))
		prev := seg.Start()
		for k := 1; k <= n; k++ {
			next := seg.PointAt(seg.Length() * float64(k) / float64(n))
			c.Line(layer, prev, next)
			prev = next
		}
	}
}
