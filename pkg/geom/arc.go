package geom

import (
	"math"
	"sort"
)

// Arc is a circular segment around Center. StartAngle is the polar angle of
// the start point; Sweep is the signed angle travelled, counter-clockwise
// positive.
type Arc struct {
	Center     Vec
	Radius     float64
	StartAngle float64
	Sweep      float64
}

var _ Segment = Arc{}

// NewArc returns the arc of the given radius around center that starts at
// angle start and sweeps by sweep radians.
func NewArc(center Vec, radius, start, sweep float64) Arc {
	return Arc{Center: center, Radius: radius, StartAngle: start, Sweep: sweep}
}

func (a Arc) Start() Vec      { return a.pointAtAngle(a.StartAngle) }
func (a Arc) End() Vec        { return a.pointAtAngle(a.StartAngle + a.Sweep) }
func (a Arc) Length() float64 { return a.Radius * math.Abs(a.Sweep) }

func (a Arc) pointAtAngle(angle float64) Vec {
	return a.Center.Add(Polar(angle).MulScalar(a.Radius))
}

// angleAt converts an arc length from Start into a polar angle.
func (a Arc) angleAt(s float64) float64 {
	l := a.Length()
	if l < Epsilon {
		return a.StartAngle
	}
	s = math.Max(0, math.Min(s, l))
	return a.StartAngle + a.Sweep*s/l
}

func (a Arc) PointAt(s float64) Vec {
	return a.pointAtAngle(a.angleAt(s))
}

func (a Arc) TangentAt(s float64) Vec {
	t := Perp(Polar(a.angleAt(s)))
	if a.Sweep < 0 {
		return t.MulScalar(-1)
	}
	return t
}

// travel returns the angle from StartAngle to the polar angle of p,
// measured in the sweep direction and normalised into [0, 2*pi).
func (a Arc) travel(p Vec) float64 {
	v := p.Sub(a.Center)
	d := math.Atan2(v.Y, v.X) - a.StartAngle
	if a.Sweep < 0 {
		d = -d
	}
	return normalizeAngle(d)
}

func (a Arc) LengthAt(p Vec) float64 {
	d := a.travel(p)
	sweep := math.Abs(a.Sweep)
	if d <= sweep {
		return a.Radius * d
	}
	// Outside the arc: snap to whichever end is angularly closer.
	if d-sweep < 2*math.Pi-d {
		return a.Length()
	}
	return 0
}

// contains reports whether p, assumed on the circle, lies on the arc.
func (a Arc) contains(p Vec) bool {
	tol := Epsilon / math.Max(a.Radius, Epsilon)
	d := a.travel(p)
	return d <= math.Abs(a.Sweep)+tol || d >= 2*math.Pi-tol
}

func (a Arc) IntersectLine(probe Line) []Vec {
	e, ok := Unit(probe.P1.Sub(probe.P0))
	if !ok || a.Radius < Epsilon {
		return nil
	}
	toCenter := a.Center.Sub(probe.P0)
	foot := probe.P0.Add(e.MulScalar(toCenter.Dot(e)))
	dist := Dist(foot, a.Center)
	if dist > a.Radius+Epsilon {
		return nil
	}

	var candidates []Vec
	h := math.Sqrt(math.Max(0, a.Radius*a.Radius-dist*dist))
	if h < Epsilon {
		candidates = []Vec{foot}
	} else {
		candidates = []Vec{foot.Sub(e.MulScalar(h)), foot.Add(e.MulScalar(h))}
	}

	var pts []Vec
	for _, p := range candidates {
		if a.contains(p) {
			pts = append(pts, p)
		}
	}
	sort.SliceStable(pts, func(i, j int) bool {
		return a.LengthAt(pts[i]) < a.LengthAt(pts[j])
	})
	return pts
}

func (a Arc) Reverse() Segment {
	return Arc{
		Center:     a.Center,
		Radius:     a.Radius,
		StartAngle: a.StartAngle + a.Sweep,
		Sweep:      -a.Sweep,
	}
}
