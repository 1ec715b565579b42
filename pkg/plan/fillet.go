package plan

import (
	"fmt"
	"math"

	"github.com/chazu/stairway/pkg/geom"
)

// turn is the outside polyline of a two-flight stair.
type turn struct {
	start, corner, end geom.Vec
	d1, d2             geom.Vec // unit directions of the two legs
	n1, n2             geom.Vec // unit normals toward the inside
	theta              float64  // signed turn angle, radians
}

// offset returns the polyline moved by delta toward the inside, with the
// corner rounded to radius. Offset corners share the fillet center when
// delta+radius is constant.
func (t turn) offset(delta, radius float64) (*geom.Curve, error) {
	// bisector scaled so that bisector·n1 == bisector·n2 == 1
	bisector := t.n1.Add(t.n2).MulScalar(1 / (1 + t.d1.Dot(t.d2)))

	s := t.start.Add(t.n1.MulScalar(delta))
	e := t.end.Add(t.n2.MulScalar(delta))

	if radius <= 0 {
		inner := t.corner.Add(bisector.MulScalar(delta))
		if err := checkLeg(s, inner, t.d1, 1); err != nil {
			return nil, err
		}
		if err := checkLeg(inner, e, t.d2, 2); err != nil {
			return nil, err
		}
		return geom.NewCurve(geom.NewLine(s, inner), geom.NewLine(inner, e))
	}

	center := t.corner.Add(bisector.MulScalar(delta + radius))
	t1 := center.Sub(t.n1.MulScalar(radius))
	t2 := center.Sub(t.n2.MulScalar(radius))
	if err := checkLeg(s, t1, t.d1, 1); err != nil {
		return nil, err
	}
	if err := checkLeg(t2, e, t.d2, 2); err != nil {
		return nil, err
	}

	startAngle := math.Atan2(-t.n1.Y, -t.n1.X)
	arc := geom.NewArc(center, radius, startAngle, -t.theta)
	return geom.NewCurve(geom.NewLine(s, t1), arc, geom.NewLine(t2, e))
}

// checkLeg fails when the straight part of a leg runs backwards.
func checkLeg(from, to, dir geom.Vec, flight int) error {
	if l := to.Sub(from).Dot(dir); l < -geom.ConnectTolerance {
		return fmt.Errorf("%w: flight %d is %.1f short", ErrShortFlight, flight, -l)
	}
	return nil
}
