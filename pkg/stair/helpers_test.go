package stair

import (
	"testing"

	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/geom"
	"github.com/chazu/stairway/pkg/plan"
)

const tol = 1e-6

func vecNear(a, b geom.Vec) bool {
	return geom.Near(a, b, tol)
}

func line(x0, y0, x1, y1 float64) geom.Line {
	return geom.NewLine(geom.Vec{X: x0, Y: y0}, geom.Vec{X: x1, Y: y1})
}

// straightParams is the default stair with no turn: walkpath along x=0,
// inside at x=500, outside at x=-500, 6000 long.
func straightParams() design.Params {
	p := design.Defaults()
	p.Angle = 0
	return p
}

func mustBoundaries(t *testing.T, p design.Params) *plan.Boundaries {
	t.Helper()
	b, err := plan.Build(p)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	return b
}

func mustCompute(t *testing.T, p design.Params) (*Result, *plan.Boundaries) {
	t.Helper()
	b := mustBoundaries(t, p)
	res, err := Compute(p, b)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	return res, b
}

func sameSets(t *testing.T, got, want *StepSet) {
	t.Helper()
	if got.Last() != want.Last() {
		t.Fatalf("Last() = %d, want %d", got.Last(), want.Last())
	}
	for i := 0; i <= want.Last(); i++ {
		g, gok := got.Get(i)
		w, wok := want.Get(i)
		if gok != wok {
			t.Errorf("step %d: populated = %v, want %v", i, gok, wok)
			continue
		}
		if g != w {
			t.Errorf("step %d: %+v, want %+v", i, g, w)
		}
	}
}
