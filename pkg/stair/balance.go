package stair

import (
	"math"

	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/geom"
	"github.com/chazu/stairway/pkg/plan"
)

// StepLineTolerance is how close a harrow step's walk length must be to a
// whole number of goings for it to become a step line.
const StepLineTolerance = 0.02

// Direction is the way a balanced zone is walked from its anchor.
type Direction int

const (
	Ascending  Direction = iota // from the bottom landing upward
	Descending                  // from the top landing downward
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

func (d Direction) sign() int {
	if d == Descending {
		return -1
	}
	return 1
}

// BalanceSection is one balanced zone, anchored at a landing.
type BalanceSection struct {
	Anchor     int       // step index of the landing
	Direction  Direction // toward the turn
	Angle      float64   // share of the turn, radians
	Proportion float64   // percent of the remaining straight run that is balanced
}

// Sections returns the two balanced zones of p for a stair with n steps:
// the bottom zone first, then the top zone. The balance delta shifts turn
// angle from one zone to the other.
func Sections(p design.Params, n int) []BalanceSection {
	theta, delta := p.AngleRad(), p.DeltaRad()
	return []BalanceSection{
		{Anchor: 0, Direction: Ascending, Angle: -theta + delta, Proportion: p.BalanceProp1},
		{Anchor: n, Direction: Descending, Angle: -theta - delta, Proportion: p.BalanceProp2},
	}
}

// Balancer redistributes radiating steps through a turn.
type Balancer struct {
	Bounds       *plan.Boundaries
	Going        float64
	Width        float64
	InsideRadius float64
}

// BalanceAll returns the balanced step set for p. A straight stair has
// nothing to balance and gets a copy of radiating.
func BalanceAll(radiating *StepSet, b *plan.Boundaries, p design.Params, going float64) *StepSet {
	if !p.IsTurning() {
		return radiating.Clone()
	}
	bl := Balancer{Bounds: b, Going: going, Width: p.Width, InsideRadius: p.InsideRadius}
	return bl.All(radiating, Sections(p, radiating.Last())...)
}

// All runs sections in order and fills the remaining indices from
// radiating. A section never overwrites an index set by an earlier one, so
// where zones overlap the bottom zone wins.
func (bl Balancer) All(radiating *StepSet, sections ...BalanceSection) *StepSet {
	out := NewStepSet(radiating.Last())
	for _, sec := range sections {
		n := bl.Section(out, radiating, sec)
		Logger().Debug("balanced section",
			"anchor", sec.Anchor, "direction", sec.Direction.String(), "steps", n)
	}
	for _, i := range radiating.Indices() {
		if !out.Has(i) {
			cs, _ := radiating.Get(i)
			out.Put(i, cs)
		}
	}
	return out
}

// Section balances one zone into dst and returns the number of step lines
// it added. Degenerate zones add nothing, leaving their steps radiating.
func (bl Balancer) Section(dst, radiating *StepSet, sec BalanceSection) int {
	anchor, ok := radiating.Get(sec.Anchor)
	if !ok || !anchor.Walk.Present || !anchor.Inside.Present {
		Logger().Warn("balancing skipped, anchor step incomplete", "anchor", sec.Anchor)
		return 0
	}
	if bl.Going <= geom.Epsilon {
		return 0
	}

	walkLeft := bl.lengthLeft(bl.Bounds.Walk, anchor.Walk, sec.Direction)
	insideLeft := bl.lengthLeft(bl.Bounds.Inside, anchor.Inside, sec.Direction)

	keep := 1 - sec.Proportion/100
	walkOffsetStep := int(walkLeft * keep / bl.Going)
	walkOffset := float64(walkOffsetStep) * bl.Going
	walkToBalance := walkLeft - walkOffset
	insideOffset := float64(int(insideLeft*keep/bl.Going)) * bl.Going

	steps, ok := Harrow(bl.Going, bl.Width, bl.InsideRadius, walkToBalance, math.Abs(sec.Angle/2))
	if !ok {
		Logger().Warn("balancing skipped, degenerate zone",
			"anchor", sec.Anchor, "walk_to_balance", walkToBalance)
		return 0
	}

	sign := float64(sec.Direction.sign())
	added := 0
	for k, h := range steps {
		if math.Abs(bl.Going*float64(k+1)-h.Walk) >= StepLineTolerance {
			continue
		}
		idx := sec.Anchor + sec.Direction.sign()*(k+1+walkOffsetStep)
		if !radiating.Has(idx) || dst.Has(idx) {
			continue
		}
		walkL := anchor.Walk.Distance + sign*(walkOffset+h.Walk)
		insideL := anchor.Inside.Distance + sign*(insideOffset+h.Inside)

		cs, ok := bl.stepLine(walkL, insideL)
		if !ok {
			continue
		}
		if dst.PutIfAbsent(idx, cs) {
			added++
		}
	}
	return added
}

// lengthLeft is the arc length between e and the end of its segment in
// direction d.
func (bl Balancer) lengthLeft(c *geom.Curve, e Endpoint, d Direction) float64 {
	seg := c.Segment(e.Segment)
	local := seg.LengthAt(e.Point)
	if d == Descending {
		return local
	}
	return seg.Length() - local
}

// stepLine builds the balanced step through the walkpath and inside string
// at the given arc lengths and extends it to the outside string.
func (bl Balancer) stepLine(walkL, insideL float64) (StepCrossSection, bool) {
	walk, ok := bl.Bounds.Walk.Locate(walkL)
	if !ok {
		return StepCrossSection{}, false
	}
	inside, ok := bl.Bounds.Inside.Locate(insideL)
	if !ok {
		return StepCrossSection{}, false
	}
	if walk.Clamped || inside.Clamped {
		Logger().Warn("balanced step outside curve, clamped", "walk", walkL, "inside", insideL)
	}
	line := geom.NewLine(inside.Point, walk.Point)
	if line.Length() < geom.Epsilon {
		return StepCrossSection{}, false
	}
	outside, ok := geom.NearestIntersection(line, bl.Bounds.Outside, false)
	if !ok {
		return StepCrossSection{}, false
	}
	return StepCrossSection{
		Walk:    endpointAt(walk.Point, walk.Segment, clampLength(walkL, bl.Bounds.Walk)),
		Inside:  endpointAt(inside.Point, inside.Segment, clampLength(insideL, bl.Bounds.Inside)),
		Outside: endpointAt(outside.Point, outside.Segment, outside.Distance),
	}, true
}

func clampLength(l float64, c *geom.Curve) float64 {
	return math.Max(0, math.Min(l, c.Length()))
}
