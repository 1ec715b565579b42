package stair

import (
	"math"

	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/geom"
)

// HarrowStep is one balanced step line, measured from the start of the
// balanced zone: arc length along the inside string, arc length along the
// walkpath, and the line's angle to the inside path.
type HarrowStep struct {
	Inside float64
	Walk   float64
	Angle  float64
}

// Harrow spreads the steps of one balanced zone with the harrow method.
//
// The zone is a straight run of length straight followed by half of a turn
// of balanceAngle radians. Its walkpath length W and inside length T are
// laid out as the legs of a right triangle; step k sits at walk length
// going*(k+1) (capped at W) and its inside length is read off the harrow
// line through the triangle, which compresses the inside spacing near the
// pivot. It reports false when the zone is degenerate.
func Harrow(going, width, insideRadius, straight, balanceAngle float64) ([]HarrowStep, bool) {
	if going <= geom.Epsilon || straight < 0 || balanceAngle < 0 {
		return nil, false
	}
	wr := design.WalkpathMaxRadius(width)
	walkTotal := straight + (wr+insideRadius)*balanceAngle
	insideTotal := straight + insideRadius*balanceAngle
	if insideTotal < geom.Epsilon || walkTotal < geom.Epsilon {
		return nil, false
	}

	// A ratio a hair above a whole number is rounding noise, not another step.
	count := int(math.Ceil(walkTotal/going - geom.Epsilon))
	angleB := math.Atan(walkTotal / insideTotal)
	angleA := math.Pi - 2*angleB
	sinA, cosA := math.Sincos(angleA)

	steps := make([]HarrowStep, 0, count)
	for k := 0; k < count; k++ {
		walk := math.Min(going*float64(k+1), walkTotal)
		den := insideTotal*sinA + walk*cosA
		if math.Abs(den) < geom.Epsilon {
			return nil, false
		}
		steps = append(steps, HarrowStep{
			Inside: insideTotal * walk / den,
			Walk:   walk,
			Angle:  math.Atan(walk / insideTotal),
		})
	}
	return steps, true
}
