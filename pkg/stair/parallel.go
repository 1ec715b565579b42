package stair

import (
	"math"

	"github.com/chazu/stairway/pkg/geom"
	"github.com/chazu/stairway/pkg/plan"
)

// ParallelOffset derives the step lines lying offset away from each line of
// base, measured perpendicular to the line at its walkpath point. Positive
// offsets move toward the top of the stair, negative ones toward the
// bottom. turn is the stair's turn angle; only its sign is used, to keep
// that meaning for left-hand stairs.
//
// Each derived line is rebuilt at its own step and projected again onto the
// three curves rather than offsetting the curves once, so it stays
// perpendicular to the local walk direction. Steps without a walk and an
// inside point, or whose new line crosses nothing, are left out.
func ParallelOffset(base *StepSet, b *plan.Boundaries, offset, turn float64) *StepSet {
	if turn < 0 {
		offset = -offset
	}
	out := NewStepSet(base.Last())
	for _, i := range base.Indices() {
		cs, _ := base.Get(i)
		if !cs.Walk.Present || !cs.Inside.Present {
			continue
		}
		outward, ok := geom.Unit(cs.Walk.Point.Sub(cs.Inside.Point))
		if !ok {
			Logger().Warn("parallel offset skipped, walk and inside coincide", "step", i)
			continue
		}

		tip := cs.Walk.Point.Add(outward.MulScalar(math.Abs(offset)))
		start := geom.OffsetPerpendicular(cs.Walk.Point, tip, offset)
		probe := geom.NewLine(start, start.Add(outward))

		walk, okWalk := geom.NearestIntersection(probe, b.Walk, false)
		inside, okIn := geom.NearestIntersection(probe, b.Inside, false)
		outside, okOut := geom.NearestIntersection(probe, b.Outside, false)
		if !okWalk && !okIn && !okOut {
			continue
		}
		out.Put(i, StepCrossSection{
			Walk:    endpointFromHit(walk, okWalk),
			Inside:  endpointFromHit(inside, okIn),
			Outside: endpointFromHit(outside, okOut),
		})
	}
	return out
}
