// Package app runs the whole stair pipeline for a front end: DSL source in,
// step layout, plan strokes and diagnostics out.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/chazu/stairway/pkg/canvas"
	"github.com/chazu/stairway/pkg/design"
	"github.com/chazu/stairway/pkg/engine"
	"github.com/chazu/stairway/pkg/geom"
	"github.com/chazu/stairway/pkg/plan"
	"github.com/chazu/stairway/pkg/sketch"
	"github.com/chazu/stairway/pkg/stair"
)

// App evaluates stair descriptions. It is safe for concurrent use.
type App struct {
	engine *engine.Engine
	opts   sketch.Options
	log    *slog.Logger
}

// EvalErrorData is a JSON-serializable diagnostic for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// LineData is a plan line in millimetres.
type LineData struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// StrokeData is a plan line on a drawing layer.
type StrokeData struct {
	Layer string `json:"layer"`
	LineData
}

// StepData is one tread of the computed stair.
type StepData struct {
	Level       int       `json:"level"`
	Elevation   float64   `json:"elevation"`
	Bottom      float64   `json:"bottom"`
	RiserHeight float64   `json:"riserHeight"`
	Front       *LineData `json:"front"`
	Back        *LineData `json:"back"`
	Rabbet      *LineData `json:"rabbet,omitempty"`
	Groove1     *LineData `json:"groove1,omitempty"`
	Groove2     *LineData `json:"groove2,omitempty"`
}

// ValuesData are the scalar results of a computation.
type ValuesData struct {
	StepNumber     int     `json:"stepNumber"`
	StepNumberMini int     `json:"stepNumberMini"`
	StepNumberMaxi int     `json:"stepNumberMaxi"`
	StepGoing      float64 `json:"stepGoing"`
	StepHeight     float64 `json:"stepHeight"`
	BlondelLaw     float64 `json:"blondelLaw"`
	ClimbAngle     float64 `json:"climbAngle"`
	StartLength    float64 `json:"startLength"`
	TotalLength    float64 `json:"totalLength"`
	WalkpathLength float64 `json:"walkpathLength"`
}

// EvalResult is the full result returned to the frontend. Values and
// Params are nil when nothing was computed.
type EvalResult struct {
	Params   *design.Params  `json:"params"`
	Values   *ValuesData     `json:"values"`
	Steps    []StepData      `json:"steps"`
	Lines    []StrokeData    `json:"lines"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// OK reports whether the result carries no errors.
func (r EvalResult) OK() bool { return len(r.Errors) == 0 }

// Option configures an App.
type Option func(*App)

// WithTimeout sets the DSL evaluation timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *App) { a.engine.SetTimeout(d) }
}

// WithLayers restricts the drawn layers. No layers means all of them.
func WithLayers(layers ...canvas.Layer) Option {
	return func(a *App) { a.opts.Layers = layers }
}

// WithLogger sets the logger for pipeline failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// NewApp creates an App with its own DSL engine.
func NewApp(opts ...Option) *App {
	a := &App{
		engine: engine.NewEngine(),
		log:    slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Fork returns an App with the same options and its own engine. Evaluations
// on a fork never supersede those on a, so independent callers such as
// HTTP requests each use a fork.
func (a *App) Fork() *App {
	f := *a
	f.engine = engine.NewEngine()
	f.engine.SetTimeout(a.engine.Timeout())
	return &f
}

func newResult() EvalResult {
	return EvalResult{
		Steps:    []StepData{},
		Lines:    []StrokeData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

// Evaluate takes DSL source and returns the stair layout and diagnostics.
// Source without a stair form yields an empty result.
func (a *App) Evaluate(source string) EvalResult {
	result, _ := a.render(nil, source)
	return result
}

// Compute lays out p directly, bypassing the DSL.
func (a *App) Compute(p design.Params) EvalResult {
	result, _ := a.compute(nil, p)
	return result
}

// Render evaluates source and draws the plan onto c. The returned count is
// the number of strokes drawn.
func (a *App) Render(c canvas.Canvas, source string) (EvalResult, int) {
	return a.render(c, source)
}

// RenderParams draws the plan of p onto c.
func (a *App) RenderParams(c canvas.Canvas, p design.Params) (EvalResult, int) {
	return a.compute(c, p)
}

func (a *App) render(c canvas.Canvas, source string) (EvalResult, int) {
	result := newResult()

	// Step 1: evaluate the DSL into parameters.
	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result, 0
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result, 0
	}
	if p == nil {
		return result, 0
	}
	return a.compute(c, *p)
}

func (a *App) compute(c canvas.Canvas, p design.Params) (EvalResult, int) {
	result := newResult()
	result.Params = &p

	// Step 2: validate before any geometry is built.
	vr := design.ValidateAll(p)
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Field: w.Field, Message: w.Message})
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Field: e.Field, Message: e.Message})
		}
		return result, 0
	}

	// Step 3: boundaries and layout.
	b, err := plan.Build(p)
	if err != nil {
		a.log.Error("plan failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result, 0
	}
	res, err := stair.Compute(p, b)
	if err != nil {
		a.log.Error("compute failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: fmt.Sprintf("layout failed: %v", err)})
		return result, 0
	}

	// Step 4: convert to the frontend format.
	result.Values = values(res)
	for _, t := range res.Treads {
		result.Steps = append(result.Steps, StepData{
			Level:       t.Level,
			Elevation:   t.Elevation,
			Bottom:      t.Bottom,
			RiserHeight: t.RiserHeight,
			Front:       lineData(t.Front),
			Back:        lineData(t.Back),
			Rabbet:      lineData(t.Rabbet),
			Groove1:     lineData(t.Groove1),
			Groove2:     lineData(t.Groove2),
		})
	}
	strokes := sketch.Strokes(res, b, a.opts)
	for _, s := range strokes {
		result.Lines = append(result.Lines, StrokeData{Layer: string(s.Layer), LineData: segment(s.P0, s.P1)})
	}
	if c != nil {
		canvas.Replay(c, strokes)
	}
	return result, len(strokes)
}

func values(res *stair.Result) *ValuesData {
	return &ValuesData{
		StepNumber:     res.StepNumber,
		StepNumberMini: res.StepNumberMini,
		StepNumberMaxi: res.StepNumberMaxi,
		StepGoing:      res.StepGoing,
		StepHeight:     res.StepHeight,
		BlondelLaw:     res.BlondelLaw,
		ClimbAngle:     res.ClimbAngle,
		StartLength:    res.StartLength,
		TotalLength:    res.TotalLength,
		WalkpathLength: res.WalkpathLength,
	}
}

func lineData(l stair.StepLine) *LineData {
	if !l.Present {
		return nil
	}
	d := segment(l.Line.P0, l.Line.P1)
	return &d
}

func segment(p0, p1 geom.Vec) LineData {
	return LineData{X0: p0.X, Y0: p0.Y, X1: p1.X, Y1: p1.Y}
}
