package geom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyCurve is returned when a curve has no segment of non-zero length.
	ErrEmptyCurve = errors.New("curve has no segments")
	// ErrDisconnected is returned when consecutive segments do not share an end.
	ErrDisconnected = errors.New("curve segments are not connected")
)

// Curve is an ordered, connected chain of segments. Each segment starts
// where the previous one ends. Curves are immutable.
type Curve struct {
	segs   []Segment
	starts []float64 // arc length at the start of each segment
	length float64
}

// NewCurve chains segs into a curve. Segments may be given in either
// direction; each one is flipped as needed so that the chain is oriented
// from the first segment onward. Zero-length segments are dropped.
func NewCurve(segs ...Segment) (*Curve, error) {
	var kept []Segment
	for _, s := range segs {
		if s == nil || s.Length() < Epsilon {
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return nil, ErrEmptyCurve
	}

	// Orient the first segment so that it leads into the second.
	if len(kept) > 1 {
		first, second := kept[0], kept[1]
		if !touches(first.End(), second) && touches(first.Start(), second) {
			kept[0] = first.Reverse()
		}
	}

	for i := 1; i < len(kept); i++ {
		prevEnd := kept[i-1].End()
		switch {
		case Near(prevEnd, kept[i].Start(), ConnectTolerance):
		case Near(prevEnd, kept[i].End(), ConnectTolerance):
			kept[i] = kept[i].Reverse()
		default:
			return nil, fmt.Errorf("%w: segment %d starts at (%.3f, %.3f), previous ends at (%.3f, %.3f)",
				ErrDisconnected, i, kept[i].Start().X, kept[i].Start().Y, prevEnd.X, prevEnd.Y)
		}
	}

	c := &Curve{segs: kept, starts: make([]float64, len(kept))}
	for i, s := range kept {
		c.starts[i] = c.length
		c.length += s.Length()
	}
	return c, nil
}

func touches(p Vec, s Segment) bool {
	return Near(p, s.Start(), ConnectTolerance) || Near(p, s.End(), ConnectTolerance)
}

// MustCurve is like NewCurve but panics on error. Intended for tests and
// fixed geometry.
func MustCurve(segs ...Segment) *Curve {
	c, err := NewCurve(segs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Length returns the total arc length.
func (c *Curve) Length() float64 { return c.length }

// Len returns the number of segments.
func (c *Curve) Len() int { return len(c.segs) }

// Segment returns segment i.
func (c *Curve) Segment(i int) Segment { return c.segs[i] }

// Segments returns a copy of the segment list.
func (c *Curve) Segments() []Segment {
	out := make([]Segment, len(c.segs))
	copy(out, c.segs)
	return out
}

// SegmentStart returns the arc length at which segment i begins.
func (c *Curve) SegmentStart(i int) float64 { return c.starts[i] }

// Start returns the first point of the curve.
func (c *Curve) Start() Vec { return c.segs[0].Start() }

// End returns the last point of the curve.
func (c *Curve) End() Vec { return c.segs[len(c.segs)-1].End() }

// Location is a point on a curve found by arc length.
type Location struct {
	Point   Vec
	Tangent Vec // unit tangent in curve direction
	Segment int // index of the owning segment
	Local   float64
	// Clamped is set when the requested length fell outside the curve by
	// more than Epsilon and was pulled back to the nearest end.
	Clamped bool
}

// Locate returns the point at arc length from the start of the curve.
// Lengths outside [0, Length] are clamped to the nearest end; the result
// is then marked Clamped. It reports false only for a nil curve.
func (c *Curve) Locate(length float64) (Location, bool) {
	if c == nil || len(c.segs) == 0 {
		return Location{}, false
	}
	clamped := length < -Epsilon || length > c.length+Epsilon
	length = math.Max(0, math.Min(length, c.length))

	i := len(c.segs) - 1
	for j := range c.segs {
		if length <= c.starts[j]+c.segs[j].Length()+Epsilon {
			i = j
			break
		}
	}
	local := length - c.starts[i]
	s := c.segs[i]
	return Location{
		Point:   s.PointAt(local),
		Tangent: s.TangentAt(local),
		Segment: i,
		Local:   math.Max(0, math.Min(local, s.Length())),
		Clamped: clamped,
	}, true
}

// DistanceAt returns the arc length along the curve of point p on
// segment i.
func (c *Curve) DistanceAt(i int, p Vec) float64 {
	return c.starts[i] + c.segs[i].LengthAt(p)
}

// Reverse returns the curve traversed from its end to its start.
func (c *Curve) Reverse() *Curve {
	segs := make([]Segment, len(c.segs))
	for i, s := range c.segs {
		segs[len(c.segs)-1-i] = s.Reverse()
	}
	r, err := NewCurve(segs...)
	if err != nil {
		// A valid curve always reverses into a valid curve.
		panic(err)
	}
	return r
}

// Concat joins curves end to start into a single curve.
func Concat(curves ...*Curve) (*Curve, error) {
	var segs []Segment
	for _, c := range curves {
		if c == nil {
			continue
		}
		segs = append(segs, c.segs...)
	}
	return NewCurve(segs...)
}
