package geom

// Hit is an intersection of a probe line with a curve.
type Hit struct {
	Point    Vec
	Segment  int     // index of the segment that was crossed
	Distance float64 // arc length of Point along the whole curve
}

// NearestIntersection intersects the infinite line through probe with every
// segment of c and returns the crossing closest to the probe's reference
// point: P0, or P1 when fromEnd is set. On equal distances the first crossing
// in segment order wins. It reports false when nothing is crossed.
func NearestIntersection(probe Line, c *Curve, fromEnd bool) (Hit, bool) {
	if c == nil {
		return Hit{}, false
	}
	ref := probe.P0
	if fromEnd {
		ref = probe.P1
	}

	var (
		best     Hit
		bestDist float64
		found    bool
	)
	for i, s := range c.segs {
		for _, p := range s.IntersectLine(probe) {
			d := Dist(ref, p)
			if !found || d < bestDist {
				best = Hit{Point: p, Segment: i}
				bestDist = d
				found = true
			}
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Distance = c.DistanceAt(best.Segment, best.Point)
	return best, true
}
