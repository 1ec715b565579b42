package stair

import (
	"fmt"
	"math"

	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/geom"
	"github.com/chazu/stairway/pkg/plan"
)

// Layout is a base set of step lines with the sets derived from it. Sets
// for options that are off are empty.
type Layout struct {
	Base    *StepSet
	Overlap *StepSet // nosing fronts
	Riser   *StepSet // riser board faces
	Back    *StepSet // tread backs at the riser rabbet
}

// Result is the computed stair.
type Result struct {
	StepNumber     int
	StepNumberMini int
	StepNumberMaxi int
	StepGoing      float64
	StepHeight     float64
	BlondelLaw     float64
	ClimbAngle     float64 // degrees

	StartLength    float64 // walkpath consumed before step line 0
	TotalLength    float64 // whole walkpath
	WalkpathLength float64 // walkpath shared by the steps

	Radiating Layout
	Balancing Layout
	Treads    []Tread
}

// Compute lays out the stair described by p on b.
func Compute(p design.Params, b *plan.Boundaries) (*Result, error) {
	if b == nil || b.Walk == nil || b.Inside == nil || b.Outside == nil {
		return nil, fmt.Errorf("stair: boundaries: %w", ErrNoWalkpath)
	}

	start := p.StartLength()
	total := b.Walk.Length()
	walkLen := total - start
	if walkLen <= geom.Epsilon {
		return nil, fmt.Errorf("stair: walkpath %.1f, start %.1f: %w", total, start, ErrNoWalkpath)
	}

	count, err := OptimalStepNumber(p.Height, walkLen)
	if err != nil {
		return nil, fmt.Errorf("stair: step number: %w", err)
	}
	n := count.Number
	if p.StepNumber > 0 {
		n = p.StepNumber
	}
	going, height, blondel := Blondel(p.Height, walkLen, n)

	Logger().Debug("step count",
		"n", n, "mini", count.Mini, "maxi", count.Maxi,
		"going", going, "height", height, "blondel", blondel)

	samples := SampleWalk(b.Walk, going, start, n)
	radiating := ProjectRadiating(samples, b)
	base, ok := radiating.Get(0)
	if !samples[0].Found || !ok || !base.Inside.Present || !base.Outside.Present {
		return nil, fmt.Errorf("stair: %w", ErrNoBaseStep)
	}

	balancing := BalanceAll(radiating, b, p, going)
	Logger().Debug("balanced", "indices", balancing.Indices())

	res := &Result{
		StepNumber:     n,
		StepNumberMini: count.Mini,
		StepNumberMaxi: count.Maxi,
		StepGoing:      going,
		StepHeight:     height,
		BlondelLaw:     blondel,
		ClimbAngle:     design.Degrees(math.Atan(height / going)),
		StartLength:    start,
		TotalLength:    total,
		WalkpathLength: walkLen,
		Radiating:      derive(radiating, b, p),
		Balancing:      derive(balancing, b, p),
	}
	res.Treads = BuildTreads(p, n, height, res.Balancing)
	return res, nil
}

// derive builds the overlap, riser and back sets of base.
func derive(base *StepSet, b *plan.Boundaries, p design.Params) Layout {
	empty := func() *StepSet { return NewStepSet(base.Last()) }
	l := Layout{Base: base, Overlap: empty(), Riser: empty(), Back: empty()}
	turn := p.Angle
	if p.IsOverlapStair() {
		l.Overlap = ParallelOffset(base, b, -p.OverlapLength, turn)
	}
	if p.IsRiserStair() {
		l.Riser = ParallelOffset(base, b, p.RiserThickness, turn)
		l.Back = ParallelOffset(base, b, p.RiserRabbet, turn)
	}
	return l
}
