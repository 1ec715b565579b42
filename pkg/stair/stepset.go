package stair

import "github.com/chazu/stairway/pkg/geom"

// Endpoint is one named point of a step cross-section. A zero Endpoint is
// absent.
type Endpoint struct {
	Point    geom.Vec
	Segment  int     // owning segment of the curve the point lies on
	Distance float64 // arc length along that curve
	Present  bool
}

func endpointAt(p geom.Vec, segment int, distance float64) Endpoint {
	return Endpoint{Point: p, Segment: segment, Distance: distance, Present: true}
}

func endpointFromHit(h geom.Hit, ok bool) Endpoint {
	if !ok {
		return Endpoint{}
	}
	return endpointAt(h.Point, h.Segment, h.Distance)
}

// StepCrossSection is one step line: where it crosses the walkpath, the
// inside string and the outside string.
type StepCrossSection struct {
	Walk    Endpoint
	Inside  Endpoint
	Outside Endpoint
}

// HasLine reports whether both string points are present. A section
// without them is partial and must not be drawn.
func (s StepCrossSection) HasLine() bool {
	return s.Inside.Present && s.Outside.Present
}

// Line returns the tread boundary from the inside to the outside string.
func (s StepCrossSection) Line() (geom.Line, bool) {
	if !s.HasLine() {
		return geom.Line{}, false
	}
	return geom.NewLine(s.Inside.Point, s.Outside.Point), true
}

// StepSet maps step indices 0..Last to cross-sections. Indices may be
// unpopulated.
type StepSet struct {
	sections  []StepCrossSection
	populated []bool
}

// NewStepSet returns an empty set for indices 0..last.
func NewStepSet(last int) *StepSet {
	if last < 0 {
		last = -1
	}
	return &StepSet{
		sections:  make([]StepCrossSection, last+1),
		populated: make([]bool, last+1),
	}
}

// Last returns the highest index the set can hold.
func (s *StepSet) Last() int { return len(s.sections) - 1 }

// InRange reports whether i is a valid index.
func (s *StepSet) InRange(i int) bool { return i >= 0 && i < len(s.sections) }

// Put stores cs at index i, replacing any previous value. It reports false
// when i is out of range.
func (s *StepSet) Put(i int, cs StepCrossSection) bool {
	if !s.InRange(i) {
		return false
	}
	s.sections[i] = cs
	s.populated[i] = true
	return true
}

// PutIfAbsent stores cs at index i unless the index is already populated.
// It reports whether cs was stored.
func (s *StepSet) PutIfAbsent(i int, cs StepCrossSection) bool {
	if s.Has(i) {
		return false
	}
	return s.Put(i, cs)
}

// Get returns the section at index i.
func (s *StepSet) Get(i int) (StepCrossSection, bool) {
	if !s.Has(i) {
		return StepCrossSection{}, false
	}
	return s.sections[i], true
}

// Has reports whether index i is populated.
func (s *StepSet) Has(i int) bool {
	return s.InRange(i) && s.populated[i]
}

// Len returns the number of populated indices.
func (s *StepSet) Len() int {
	n := 0
	for _, ok := range s.populated {
		if ok {
			n++
		}
	}
	return n
}

// Indices returns the populated indices in ascending order.
func (s *StepSet) Indices() []int {
	var out []int
	for i, ok := range s.populated {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// Line returns the inside-to-outside line at index i.
func (s *StepSet) Line(i int) (geom.Line, bool) {
	cs, ok := s.Get(i)
	if !ok {
		return geom.Line{}, false
	}
	return cs.Line()
}

// Clone returns an independent copy.
func (s *StepSet) Clone() *StepSet {
	c := NewStepSet(s.Last())
	copy(c.sections, s.sections)
	copy(c.populated, s.populated)
	return c
}
