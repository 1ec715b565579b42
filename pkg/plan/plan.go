// Package plan builds the three boundary curves of a stair in plan view:
// the outside string, the inside string and the walkpath.
//
// The walkpath starts at the origin and the first flight climbs along +Y.
// Positive angles turn right. The outside string is the reference: its
// first leg is Flight1Length long, its second leg Flight2Length, and the
// corner between them is rounded with a 1 mm fillet. The inside string and
// the walkpath are offsets of the outside string toward the turn.
package plan

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/geom"
)

// OutsideFillet is the corner radius of the outside string.
const OutsideFillet = 1.0

// ErrShortFlight is returned when a flight is too short to hold the turn.
var ErrShortFlight = errors.New("flight too short for the turn")

// Boundaries are the three curves a stair is laid out against. They are
// read-only once built.
type Boundaries struct {
	Walk    *geom.Curve
	Inside  *geom.Curve
	Outside *geom.Curve
}

// NewBoundaries wraps curves built elsewhere.
func NewBoundaries(walk, inside, outside *geom.Curve) (*Boundaries, error) {
	switch {
	case walk == nil:
		return nil, fmt.Errorf("plan: walkpath curve is missing")
	case inside == nil:
		return nil, fmt.Errorf("plan: inside curve is missing")
	case outside == nil:
		return nil, fmt.Errorf("plan: outside curve is missing")
	}
	return &Boundaries{Walk: walk, Inside: inside, Outside: outside}, nil
}

// Build lays out the boundary curves for p.
func Build(p design.Params) (*Boundaries, error) {
	sigma := p.TurnSign()
	origin := geom.Vec{X: -sigma * (p.Width - p.WalkpathRadius), Y: 0}

	if !p.IsTurning() {
		return buildStraight(p, origin, sigma)
	}

	theta := p.AngleRad()
	d1 := geom.Vec{X: 0, Y: 1}
	d2 := geom.Vec{X: math.Sin(theta), Y: math.Cos(theta)}
	corner := origin.Add(d1.MulScalar(p.Flight1Length))
	end := corner.Add(d2.MulScalar(p.Flight2Length))

	t := turn{
		start:  origin,
		corner: corner,
		end:    end,
		d1:     d1,
		d2:     d2,
		n1:     normal(d1, sigma),
		n2:     normal(d2, sigma),
		theta:  theta,
	}

	outside, err := t.offset(0, OutsideFillet)
	if err != nil {
		return nil, fmt.Errorf("plan: outside: %w", err)
	}
	inside, err := t.offset(p.Width, p.InsideRadius)
	if err != nil {
		return nil, fmt.Errorf("plan: inside: %w", err)
	}
	walk, err := t.offset(p.Width-p.WalkpathRadius, p.InsideRadius+p.WalkpathRadius)
	if err != nil {
		return nil, fmt.Errorf("plan: walkpath: %w", err)
	}
	return &Boundaries{Walk: walk, Inside: inside, Outside: outside}, nil
}

func buildStraight(p design.Params, origin geom.Vec, sigma float64) (*Boundaries, error) {
	length := p.Flight1Length + p.Flight2Length
	d := geom.Vec{X: 0, Y: 1}
	n := normal(d, sigma)

	line := func(delta float64) (*geom.Curve, error) {
		s := origin.Add(n.MulScalar(delta))
		return geom.NewCurve(geom.NewLine(s, s.Add(d.MulScalar(length))))
	}
	outside, err := line(0)
	if err != nil {
		return nil, fmt.Errorf("plan: outside: %w", err)
	}
	inside, err := line(p.Width)
	if err != nil {
		return nil, fmt.Errorf("plan: inside: %w", err)
	}
	walk, err := line(p.Width - p.WalkpathRadius)
	if err != nil {
		return nil, fmt.Errorf("plan: walkpath: %w", err)
	}
	return &Boundaries{Walk: walk, Inside: inside, Outside: outside}, nil
}

// normal returns the unit normal of d pointing toward the inside of the turn.
func normal(d geom.Vec, sigma float64) geom.Vec {
	return geom.Vec{X: d.Y, Y: -d.X}.MulScalar(sigma)
}
