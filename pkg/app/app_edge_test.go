package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chazu/stairway/pkg/design"
)

// ---------------------------------------------------------------------------
// Empty editor: empty string -> no steps, no errors, non-nil slices.
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	// JSON should serialize as [] not null.
	if result.Steps == nil {
		t.Error("Steps should be non-nil empty slice, got nil")
	}
	if result.Lines == nil {
		t.Error("Lines should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	for _, key := range []string{`"steps":[]`, `"lines":[]`, `"errors":[]`, `"values":null`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON %s missing %s", data, key)
		}
	}
}

func TestE2EWhitespaceAndComments(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"whitespace", "   \n\t\n  "},
		{"comments", ";; a stair will go here\n;; later"},
		{"plain arithmetic", "(def x (+ 1 2))"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NewApp().Evaluate(tc.source)
			if len(result.Errors) != 0 {
				t.Errorf("unexpected errors: %v", result.Errors)
			}
			if result.Values != nil {
				t.Error("expected no stair")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Syntax errors carry a message and, when available, a line.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := NewApp()

	// Valid code on line 1, broken code on line 2 so line info is meaningful.
	source := "(+ 1 2)\n(stair :height 3000"
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

func TestE2EDSLErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		substr string
	}{
		{"unknown keyword", `(stair :heigth 3000)`, "unknown keyword"},
		{"two stairs", `(stair) (stair)`, "only one stair"},
		{"undefined symbol", `(stair :height floor)`, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NewApp().Evaluate(tc.source)
			if len(result.Errors) == 0 {
				t.Fatal("expected an eval error")
			}
			if tc.substr != "" && !strings.Contains(result.Errors[0].Message, tc.substr) {
				t.Errorf("error %q does not mention %q", result.Errors[0].Message, tc.substr)
			}
			if result.Values != nil {
				t.Error("expected no values on error")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Validation errors stop the pipeline and name the field.
// ---------------------------------------------------------------------------

func TestE2EValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		field  string
	}{
		{"zero height", `(stair :height 0)`, "height"},
		{"narrow stair", `(stair :width 300 (walkpath :radius 250))`, "width"},
		{"steep turn", `(stair :angle 150)`, "angle"},
		{"short flight", `(stair (flights 200 3000))`, "flight1_length"},
		{"balance out of range", `(stair (balance :prop1 120))`, "balance_prop1"},
		{"step count far off", `(stair :steps 40)`, "step_number"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NewApp().Evaluate(tc.source)
			if len(result.Errors) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, e := range result.Errors {
				if e.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tc.field, result.Errors)
			}
			if result.Params == nil {
				t.Error("params should be reported with validation errors")
			}
			if len(result.Steps) != 0 || len(result.Lines) != 0 {
				t.Error("nothing should be laid out on validation errors")
			}
		})
	}
}

func TestE2EValidationWarningsDoNotBlock(t *testing.T) {
	app := NewApp()
	// 11 steps are accepted for a 2600 mm stair but give risers above
	// the comfort range.
	result := app.Evaluate(`(stair :height 2600 :steps 11)`)
	requireOK(t, result)

	if len(result.Warnings) == 0 {
		t.Fatal("expected a step count warning")
	}
	if result.Warnings[0].Field != "step_number" {
		t.Errorf("warning field = %q, want step_number", result.Warnings[0].Field)
	}
	if result.Values.StepNumber != 11 {
		t.Errorf("StepNumber = %d, want the override 11", result.Values.StepNumber)
	}
}

// ---------------------------------------------------------------------------
// Geometry variants
// ---------------------------------------------------------------------------

func TestE2ELeftTurnMirrorsRightTurn(t *testing.T) {
	app := NewApp()
	right := app.Evaluate(`(stair :angle 90)`)
	left := app.Evaluate(`(stair :angle -90)`)
	requireOK(t, right)
	requireOK(t, left)

	if right.Values.StepNumber != left.Values.StepNumber {
		t.Fatalf("step numbers differ: %d vs %d", right.Values.StepNumber, left.Values.StepNumber)
	}
	if len(right.Steps) != len(left.Steps) {
		t.Fatalf("step counts differ: %d vs %d", len(right.Steps), len(left.Steps))
	}
	for i := range right.Steps {
		r, l := right.Steps[i].Front, left.Steps[i].Front
		if r == nil || l == nil {
			continue
		}
		if !closeTo(r.X0, -l.X0) || !closeTo(r.Y0, l.Y0) {
			t.Errorf("step %d: right front (%v,%v) does not mirror left (%v,%v)", i, r.X0, r.Y0, l.X0, l.Y0)
		}
	}
}

func TestE2EOptionsDisabled(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(stair (overlap :enabled false))`)
	requireOK(t, result)

	// Without overlap there is no extra last tread.
	if len(result.Steps) != result.Values.StepNumber {
		t.Errorf("got %d steps, want %d", len(result.Steps), result.Values.StepNumber)
	}
	for _, l := range result.Lines {
		if l.Layer == "overlap" {
			t.Fatal("overlap strokes drawn with overlap disabled")
		}
	}
}

func TestE2EAnglesAcrossRange(t *testing.T) {
	for _, angle := range []int{-120, -45, 0, 30, 60, 120} {
		t.Run(fmt.Sprintf("angle %d", angle), func(t *testing.T) {
			result := NewApp().Evaluate(fmt.Sprintf(`(stair :angle %d)`, angle))
			requireOK(t, result)
			if len(result.Steps) == 0 {
				t.Error("no steps laid out")
			}
			for i := 1; i < len(result.Steps); i++ {
				if result.Steps[i].Elevation <= result.Steps[i-1].Elevation {
					t.Fatalf("step %d elevation %v not above %v", i, result.Steps[i].Elevation, result.Steps[i-1].Elevation)
				}
			}
		})
	}
}

func TestE2EArithmeticInSource(t *testing.T) {
	app := NewApp()
	source := `
(def storey 2750)
(def slab 250)
(stair :height (+ storey slab)
  (flights (* 2 1500) (/ 6000 2)))`
	result := app.Evaluate(source)
	requireOK(t, result)

	if result.Params.Height != 3000 {
		t.Errorf("Height = %v, want 3000", result.Params.Height)
	}
	if result.Params.Flight1Length != 3000 || result.Params.Flight2Length != 3000 {
		t.Errorf("flights = %v, %v", result.Params.Flight1Length, result.Params.Flight2Length)
	}
}

// ---------------------------------------------------------------------------
// Rapid evaluation: the editor calls Evaluate on every keystroke.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluation(t *testing.T) {
	app := NewApp()
	for i := 0; i < 20; i++ {
		height := 2500 + i*25
		result := app.Evaluate(fmt.Sprintf(`(stair :height %d)`, height))
		requireOK(t, result)
		if result.Params.Height != float64(height) {
			t.Fatalf("iteration %d: Height = %v, want %d", i, result.Params.Height, height)
		}
	}
}

func TestE2EConcurrentEvaluation(t *testing.T) {
	app := NewApp()
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Compute never goes through the engine's generation guard.
			result := app.Compute(design.Defaults())
			if !result.OK() || result.Values.StepNumber != 17 {
				errs <- fmt.Sprintf("errors %v, values %+v", result.Errors, result.Values)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestE2ECustomTimeout(t *testing.T) {
	app := NewApp(WithTimeout(time.Second))
	result := app.Evaluate(`(stair :height 2900)`)
	requireOK(t, result)
	if result.Params.Height != 2900 {
		t.Errorf("Height = %v, want 2900", result.Params.Height)
	}
}

func closeTo(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func TestForkKeepsOptions(t *testing.T) {
	a := NewApp(WithTimeout(time.Second), WithLayers("walk"))
	f := a.Fork()

	if f.engine == a.engine {
		t.Fatal("fork shares the engine")
	}
	if f.engine.Timeout() != time.Second {
		t.Errorf("fork timeout = %v, want 1s", f.engine.Timeout())
	}
	result := f.Compute(design.Defaults())
	requireOK(t, result)
	for _, l := range result.Lines {
		if l.Layer != "walk" {
			t.Fatalf("fork drew layer %q", l.Layer)
		}
	}
}
