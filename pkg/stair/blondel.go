package stair

import (
	"fmt"
	"math"

	"github.com/chazu/stairway/pkg/design"
)

// StepCount is the outcome of the step-count optimizer.
type StepCount struct {
	Number  int
	Mini    int
	Maxi    int
	Blondel float64 // 2 x riser + going for Number
}

// Blondel returns going, riser height and Blondel value for n steps on a
// stair of the given height and walkpath length. There is one more riser
// than there are steps.
func Blondel(height, walkpathLength float64, n int) (going, riser, blondel float64) {
	going = walkpathLength / float64(n)
	riser = height / float64(n+1)
	return going, riser, 2*riser + going
}

// OptimalStepNumber picks the step count whose Blondel value is closest to
// design.BlondelIdeal among the counts that keep risers within the design
// limits. The first count wins ties. Mini and Maxi are widened to include
// the chosen count.
func OptimalStepNumber(height, walkpathLength float64) (StepCount, error) {
	if height <= 0 || walkpathLength <= 0 {
		return StepCount{}, fmt.Errorf("%w: height %.1f, walkpath %.1f", ErrBadDimensions, height, walkpathLength)
	}
	mini, maxi := design.StepNumberRange(height)

	best := max(1, mini)
	bestDiff := math.Inf(1)
	for n := max(1, mini); n <= maxi; n++ {
		_, _, b := Blondel(height, walkpathLength, n)
		if d := math.Abs(b - design.BlondelIdeal); d < bestDiff {
			best, bestDiff = n, d
		}
	}

	_, _, b := Blondel(height, walkpathLength, best)
	return StepCount{
		Number:  best,
		Mini:    min(best, mini),
		Maxi:    max(best, maxi),
		Blondel: b,
	}, nil
}
