package stair

import (
	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/geom"
)

// StepLine is an inside-to-outside line that may be missing.
type StepLine struct {
	Line    geom.Line
	Present bool
}

func stepLineAt(set *StepSet, i int) StepLine {
	l, ok := set.Line(i)
	return StepLine{Line: l, Present: ok}
}

// Tread is the plan outline of one tread board and the riser below it.
type Tread struct {
	Level       int
	Elevation   float64 // top of the tread
	Bottom      float64 // underside of the tread
	RiserHeight float64 // riser board height, zero without risers

	Front   StepLine // nosing edge
	Back    StepLine // back edge, or the riser rabbet face
	Rabbet  StepLine // riser seat behind the tread, risers only
	Groove1 StepLine // groove edges for the riser below, risers only
	Groove2 StepLine
}

// BuildTreads outlines the n treads of a stair from its balanced layout.
// When the stair has a last-step overlap an extra nosing tread n is added.
func BuildTreads(p design.Params, n int, stepHeight float64, l Layout) []Tread {
	overlap := p.IsOverlapStair() && l.Overlap.Len() > 0
	riser := p.IsRiserStair() && l.Riser.Len() > 0

	treads := make([]Tread, 0, n+1)
	for step := 0; step < n; step++ {
		t := Tread{
			Level:     step,
			Elevation: stepHeight * float64(step+1),
		}
		t.Bottom = t.Elevation - p.StairThickness

		if overlap {
			t.Front = stepLineAt(l.Overlap, step)
		} else {
			t.Front = stepLineAt(l.Base, step)
		}

		next := step + 1
		if riser && next < n {
			t.Back = stepLineAt(l.Back, next)
			t.Rabbet = stepLineAt(l.Base, next)
		} else {
			t.Back = stepLineAt(l.Base, next)
		}

		if riser {
			t.Groove1 = stepLineAt(l.Base, step)
			t.Groove2 = stepLineAt(l.Riser, step)
			t.RiserHeight = stepHeight + p.RiserGroove
			if step == 0 {
				t.RiserHeight -= p.StairThickness
			}
		}
		treads = append(treads, t)
	}

	if p.OverlapLast && overlap {
		t := Tread{
			Level:     n,
			Elevation: stepHeight * float64(n+1),
			Front:     stepLineAt(l.Overlap, n),
			Back:      stepLineAt(l.Base, n),
		}
		t.Bottom = t.Elevation - p.StairThickness
		treads = append(treads, t)
	}
	return treads
}
