package geom

import "math"

// Segment is one piece of a boundary curve. Arc-length parameters are
// measured from Start and clamped to [0, Length].
type Segment interface {
	Start() Vec
	End() Vec
	Length() float64

	// PointAt returns the point at arc length s from Start.
	PointAt(s float64) Vec
	// TangentAt returns the unit tangent at arc length s, pointing
	// from Start toward End.
	TangentAt(s float64) Vec
	// LengthAt returns the arc length from Start to the point of the
	// segment closest to p.
	LengthAt(p Vec) float64

	// IntersectLine returns the points where the infinite line through l
	// crosses the segment, in segment order.
	IntersectLine(l Line) []Vec

	// Reverse returns the same segment traversed from End to Start.
	Reverse() Segment
}

// ---------------------------------------------------------------------------
// Line
// ---------------------------------------------------------------------------

// Line is a straight segment from P0 to P1. When used as a probe it is
// treated as an infinite line through both points.
type Line struct {
	P0, P1 Vec
}

var _ Segment = Line{}

// NewLine returns the line from p0 to p1.
func NewLine(p0, p1 Vec) Line {
	return Line{P0: p0, P1: p1}
}

func (l Line) Start() Vec      { return l.P0 }
func (l Line) End() Vec        { return l.P1 }
func (l Line) Length() float64 { return Dist(l.P0, l.P1) }

// Direction returns the unit vector from P0 to P1. A degenerate line
// returns the zero vector.
func (l Line) Direction() Vec {
	u, _ := Unit(l.P1.Sub(l.P0))
	return u
}

func (l Line) PointAt(s float64) Vec {
	s = math.Max(0, math.Min(s, l.Length()))
	return l.P0.Add(l.Direction().MulScalar(s))
}

func (l Line) TangentAt(float64) Vec {
	return l.Direction()
}

func (l Line) LengthAt(p Vec) float64 {
	s := p.Sub(l.P0).Dot(l.Direction())
	return math.Max(0, math.Min(s, l.Length()))
}

// IntersectLine returns the crossing of the infinite line through probe with
// this bounded segment. Parallel lines never intersect.
func (l Line) IntersectLine(probe Line) []Vec {
	d := l.P1.Sub(l.P0)
	e := probe.P1.Sub(probe.P0)
	dl, el := d.Length(), e.Length()
	if dl < Epsilon || el < Epsilon {
		return nil
	}
	denom := Cross(d, e)
	if math.Abs(denom) < Epsilon*dl*el {
		return nil
	}
	t := Cross(probe.P0.Sub(l.P0), e) / denom
	tol := Epsilon / dl
	if t < -tol || t > 1+tol {
		return nil
	}
	t = math.Max(0, math.Min(t, 1))
	return []Vec{l.P0.Add(d.MulScalar(t))}
}

func (l Line) Reverse() Segment {
	return Line{P0: l.P1, P1: l.P0}
}

// Translate returns the line moved by v.
func (l Line) Translate(v Vec) Line {
	return Line{P0: l.P0.Add(v), P1: l.P1.Add(v)}
}

// RotateAbout returns the line rotated by angle radians around center.
func (l Line) RotateAbout(center Vec, angle float64) Line {
	return Line{P0: RotateAbout(l.P0, center, angle), P1: RotateAbout(l.P1, center, angle)}
}
