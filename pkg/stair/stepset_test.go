package stair

import (
	"slices"
	"testing"

	"github.com/chazu/stairway/pkg/geom"
)

func fullSection(y float64) StepCrossSection {
	return StepCrossSection{
		Walk:    endpointAt(geom.Vec{X: 0, Y: y}, 0, y),
		Inside:  endpointAt(geom.Vec{X: 500, Y: y}, 0, y),
		Outside: endpointAt(geom.Vec{X: -500, Y: y}, 0, y),
	}
}

func TestStepSetPutGet(t *testing.T) {
	s := NewStepSet(3)
	if s.Last() != 3 {
		t.Fatalf("Last() = %d, want 3", s.Last())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	tests := []struct {
		name string
		i    int
		want bool
	}{
		{"first", 0, true},
		{"last", 3, true},
		{"negative", -1, false},
		{"past last", 4, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Put(tc.i, fullSection(float64(tc.i))); got != tc.want {
				t.Errorf("Put(%d) = %v, want %v", tc.i, got, tc.want)
			}
			if got := s.Has(tc.i); got != tc.want {
				t.Errorf("Has(%d) = %v, want %v", tc.i, got, tc.want)
			}
		})
	}

	if got := s.Indices(); !slices.Equal(got, []int{0, 3}) {
		t.Errorf("Indices() = %v, want [0 3]", got)
	}
	if _, ok := s.Get(1); ok {
		t.Error("Get(1) found an unpopulated index")
	}
}

func TestStepSetPutIfAbsent(t *testing.T) {
	s := NewStepSet(1)
	first, second := fullSection(10), fullSection(20)

	if !s.PutIfAbsent(0, first) {
		t.Fatal("PutIfAbsent() on empty index = false")
	}
	if s.PutIfAbsent(0, second) {
		t.Error("PutIfAbsent() replaced a populated index")
	}
	got, _ := s.Get(0)
	if got != first {
		t.Errorf("Get(0) = %+v, want first section", got)
	}
	if s.PutIfAbsent(5, first) {
		t.Error("PutIfAbsent() out of range = true")
	}
}

func TestStepSetLine(t *testing.T) {
	s := NewStepSet(1)
	s.Put(0, fullSection(100))
	partial := fullSection(200)
	partial.Outside = Endpoint{}
	s.Put(1, partial)

	l, ok := s.Line(0)
	if !ok {
		t.Fatal("Line(0) not found")
	}
	if !vecNear(l.P0, geom.Vec{X: 500, Y: 100}) || !vecNear(l.P1, geom.Vec{X: -500, Y: 100}) {
		t.Errorf("Line(0) = %v, want inside to outside at y=100", l)
	}
	if _, ok := s.Line(1); ok {
		t.Error("Line(1) drawn without an outside point")
	}
	if !s.Has(1) {
		t.Error("partial section not stored")
	}
}

func TestStepSetClone(t *testing.T) {
	s := NewStepSet(2)
	s.Put(1, fullSection(1))
	c := s.Clone()
	c.Put(2, fullSection(2))

	if s.Has(2) {
		t.Error("Clone() shares storage with the original")
	}
	if !c.Has(1) {
		t.Error("Clone() lost index 1")
	}
}

func TestNewStepSetNegative(t *testing.T) {
	s := NewStepSet(-4)
	if s.Last() != -1 || s.Len() != 0 || s.Indices() != nil {
		t.Errorf("NewStepSet(-4) = last %d, len %d", s.Last(), s.Len())
	}
}
