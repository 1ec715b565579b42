package stair

import (
	"github.com/chazu/stairway/pkg/geom"
	"github.com/chazu/stairway/pkg/plan"
)

// ProjectRadiating extends each walkpath probe to the inside and outside
// strings. A step is left out only when its walk sample is missing; a
// string that is not crossed is recorded as an absent endpoint.
func ProjectRadiating(samples []WalkSample, b *plan.Boundaries) *StepSet {
	set := NewStepSet(len(samples) - 1)
	for i, s := range samples {
		if !s.Found {
			continue
		}
		inside, okIn := geom.NearestIntersection(s.Probe, b.Inside, false)
		outside, okOut := geom.NearestIntersection(s.Probe, b.Outside, false)
		if !okIn || !okOut {
			Logger().Warn("radiating step misses a string", "step", i, "inside", okIn, "outside", okOut)
		}
		set.Put(i, StepCrossSection{
			Walk:    endpointAt(s.Point, s.Segment, s.Distance),
			Inside:  endpointFromHit(inside, okIn),
			Outside: endpointFromHit(outside, okOut),
		})
	}
	return set
}
