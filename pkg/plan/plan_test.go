package plan

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/geom"
)

func near(a, b geom.Vec) bool {
	return geom.Near(a, b, 1e-6)
}

func TestBuildQuarterTurnRight(t *testing.T) {
	b, err := Build(design.Defaults())
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}

	tests := []struct {
		name       string
		curve      *geom.Curve
		start, end geom.Vec
		length     float64
	}{
		{"walkpath", b.Walk, geom.Vec{X: 0, Y: 0}, geom.Vec{X: 2500, Y: 2500}, 3998 + 501*math.Pi/2},
		{"inside", b.Inside, geom.Vec{X: 500, Y: 0}, geom.Vec{X: 2500, Y: 2000}, 3998 + math.Pi/2},
		{"outside", b.Outside, geom.Vec{X: -500, Y: 0}, geom.Vec{X: 2500, Y: 3000}, 5998 + math.Pi/2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.curve.Len() != 3 {
				t.Errorf("Len() = %d, want 3 (line, arc, line)", tc.curve.Len())
			}
			if !near(tc.curve.Start(), tc.start) {
				t.Errorf("Start() = %v, want %v", tc.curve.Start(), tc.start)
			}
			if !near(tc.curve.End(), tc.end) {
				t.Errorf("End() = %v, want %v", tc.curve.End(), tc.end)
			}
			if math.Abs(tc.curve.Length()-tc.length) > 1e-6 {
				t.Errorf("Length() = %v, want %v", tc.curve.Length(), tc.length)
			}
		})
	}
}

func TestBuildWalkpathIsConcentricWithInside(t *testing.T) {
	b, err := Build(design.Defaults())
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	walkArc, ok := b.Walk.Segment(1).(geom.Arc)
	if !ok {
		t.Fatalf("walkpath segment 1 is %T, want geom.Arc", b.Walk.Segment(1))
	}
	insideArc, ok := b.Inside.Segment(1).(geom.Arc)
	if !ok {
		t.Fatalf("inside segment 1 is %T, want geom.Arc", b.Inside.Segment(1))
	}
	if !near(walkArc.Center, insideArc.Center) {
		t.Errorf("walk center %v != inside center %v", walkArc.Center, insideArc.Center)
	}
	if math.Abs(walkArc.Radius-insideArc.Radius-500) > 1e-9 {
		t.Errorf("radius difference = %v, want 500", walkArc.Radius-insideArc.Radius)
	}
	if walkArc.Sweep >= 0 {
		t.Errorf("right turn should sweep clockwise, got %v", walkArc.Sweep)
	}
}

func TestBuildQuarterTurnLeftMirrors(t *testing.T) {
	p := design.Defaults()
	p.Angle = -90
	b, err := Build(p)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if !near(b.Walk.End(), geom.Vec{X: -2500, Y: 2500}) {
		t.Errorf("walk End() = %v, want (-2500, 2500)", b.Walk.End())
	}
	if !near(b.Inside.Start(), geom.Vec{X: -500, Y: 0}) {
		t.Errorf("inside Start() = %v, want (-500, 0)", b.Inside.Start())
	}
	if !near(b.Outside.Start(), geom.Vec{X: 500, Y: 0}) {
		t.Errorf("outside Start() = %v, want (500, 0)", b.Outside.Start())
	}
}

func TestBuildStraight(t *testing.T) {
	p := design.Defaults()
	p.Angle = 0
	b, err := Build(p)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	for name, c := range map[string]*geom.Curve{"walk": b.Walk, "inside": b.Inside, "outside": b.Outside} {
		if c.Len() != 1 {
			t.Errorf("%s: Len() = %d, want 1", name, c.Len())
		}
		if math.Abs(c.Length()-6000) > 1e-9 {
			t.Errorf("%s: Length() = %v, want 6000", name, c.Length())
		}
	}
	if !near(b.Walk.End(), geom.Vec{X: 0, Y: 6000}) {
		t.Errorf("walk End() = %v, want (0, 6000)", b.Walk.End())
	}
	if !near(b.Inside.Start(), geom.Vec{X: 500, Y: 0}) {
		t.Errorf("inside Start() = %v, want (500, 0)", b.Inside.Start())
	}
}

func TestBuildShortFlight(t *testing.T) {
	p := design.Defaults()
	p.Flight1Length = 500
	_, err := Build(p)
	if !errors.Is(err, ErrShortFlight) {
		t.Errorf("Build() err = %v, want ErrShortFlight", err)
	}
}

func TestNewBoundariesRejectsMissingCurves(t *testing.T) {
	c := geom.MustCurve(geom.NewLine(geom.Vec{}, geom.Vec{X: 0, Y: 1}))
	if _, err := NewBoundaries(c, c, nil); err == nil {
		t.Error("expected error for missing outside curve")
	}
	if _, err := NewBoundaries(c, c, c); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
