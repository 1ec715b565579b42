package stair

import (
	"math"

	"github.com/chazu/stairway/pkg/geom"
)

// WalkSample is the point where step line i crosses the walkpath, with the
// crosswise probe used to find the strings.
type WalkSample struct {
	Point    geom.Vec
	Segment  int
	Distance float64
	Probe    geom.Line // from Point along the tangent turned +90 degrees
	Found    bool
}

// SampleWalk places n+1 step lines along walk: line i sits at
// going*i + start, clamped to the walkpath length.
func SampleWalk(walk *geom.Curve, going, start float64, n int) []WalkSample {
	samples := make([]WalkSample, n+1)
	if walk == nil {
		return samples
	}
	total := walk.Length()
	for i := range samples {
		d := math.Min(going*float64(i)+start, total)
		loc, ok := walk.Locate(d)
		if !ok {
			continue
		}
		if loc.Clamped {
			Logger().Warn("walkpath distance outside curve, clamped",
				"step", i, "distance", d, "length", total)
			d = math.Max(0, math.Min(d, total))
		}
		samples[i] = WalkSample{
			Point:    loc.Point,
			Segment:  loc.Segment,
			Distance: d,
			Probe:    geom.NewLine(loc.Point, loc.Point.Add(geom.Perp(loc.Tangent))),
			Found:    true,
		}
	}
	return samples
}
