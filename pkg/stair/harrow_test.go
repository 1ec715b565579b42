package stair

import (
	"math"
	"testing"

	"github.com/chazu/stairway/pkg/design"
)

func TestHarrowMonotonic(t *testing.T) {
	tests := []struct {
		name                   string
		going, width, ir       float64
		straight, balanceAngle float64
	}{
		{"quarter turn half", 279.7, 1000, 1, 1130, math.Pi / 4},
		{"no straight", 250, 900, 50, 0, math.Pi / 4},
		{"wide radius", 300, 1200, 200, 600, math.Pi / 3},
		{"narrow", 220, 600, 1, 400, math.Pi / 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			steps, ok := Harrow(tc.going, tc.width, tc.ir, tc.straight, tc.balanceAngle)
			if !ok {
				t.Fatal("Harrow() reported degenerate input")
			}
			wr := design.WalkpathMaxRadius(tc.width)
			walkTotal := tc.straight + (wr+tc.ir)*tc.balanceAngle
			insideTotal := tc.straight + tc.ir*tc.balanceAngle

			if want := int(math.Ceil(walkTotal / tc.going)); len(steps) != want {
				t.Fatalf("len = %d, want %d", len(steps), want)
			}
			for k := 1; k < len(steps); k++ {
				if steps[k].Walk <= steps[k-1].Walk {
					t.Errorf("walk not increasing at %d: %v <= %v", k, steps[k].Walk, steps[k-1].Walk)
				}
				if steps[k].Inside <= steps[k-1].Inside {
					t.Errorf("inside not increasing at %d: %v <= %v", k, steps[k].Inside, steps[k-1].Inside)
				}
			}
			last := steps[len(steps)-1]
			if math.Abs(last.Walk-walkTotal) > tol {
				t.Errorf("last walk = %v, want %v", last.Walk, walkTotal)
			}
			if math.Abs(last.Inside-insideTotal) > 1e-6*insideTotal {
				t.Errorf("last inside = %v, want %v", last.Inside, insideTotal)
			}
			if want := math.Atan(last.Walk / insideTotal); math.Abs(last.Angle-want) > tol {
				t.Errorf("last angle = %v, want %v", last.Angle, want)
			}
		})
	}
}

func TestHarrowWalkSpacing(t *testing.T) {
	steps, ok := Harrow(300, 1000, 1, 1000, math.Pi/4)
	if !ok {
		t.Fatal("Harrow() reported degenerate input")
	}
	for k, s := range steps[:len(steps)-1] {
		if want := 300 * float64(k+1); math.Abs(s.Walk-want) > tol {
			t.Errorf("step %d: walk = %v, want %v", k, s.Walk, want)
		}
	}
}

func TestHarrowDegenerate(t *testing.T) {
	tests := []struct {
		name                   string
		going, width, ir       float64
		straight, balanceAngle float64
	}{
		{"zero going", 0, 1000, 1, 500, math.Pi / 4},
		{"negative straight", 280, 1000, 1, -1, math.Pi / 4},
		{"negative angle", 280, 1000, 1, 500, -0.1},
		{"nothing to balance", 280, 1000, 0, 0, math.Pi / 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Harrow(tc.going, tc.width, tc.ir, tc.straight, tc.balanceAngle); ok {
				t.Error("Harrow() accepted degenerate input")
			}
		})
	}
}

func TestHarrowNearWholeStepCount(t *testing.T) {
	// 900 mm of walkpath at a 300 mm going, off by float noise.
	steps, ok := Harrow(300, 1000, 1, 900+1e-12, 0)
	if !ok {
		t.Fatal("Harrow() reported degenerate input")
	}
	if len(steps) != 3 {
		t.Errorf("len(steps) = %d, want 3", len(steps))
	}
}
