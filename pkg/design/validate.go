package design

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a validation finding blocks
// computation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks computation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Field    string             // parameter name, empty for cross-field rules
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Field   string
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs the range checks on every field and returns the blocking
// findings. An empty slice means the parameters can be laid out.
func Validate(p Params) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateFinite(p)...)
	if len(errs) > 0 {
		return errs
	}
	errs = append(errs, validateDimensions(p)...)
	errs = append(errs, validateAngles(p)...)
	errs = append(errs, validateBoards(p)...)
	errs = append(errs, validateFlights(p)...)
	errs = append(errs, validateBalance(p)...)
	return errs
}

// ValidateAll runs the range checks plus the comfort rules and returns a
// ValidationResult with separated errors and warnings.
func ValidateAll(p Params) ValidationResult {
	var result ValidationResult
	result.Errors = append(result.Errors, Validate(p)...)
	if len(result.Errors) > 0 && !isFinite(p) {
		return result
	}

	stepErrs, stepWarnings := validateStepNumber(p)
	result.Errors = append(result.Errors, stepErrs...)
	result.Warnings = append(result.Warnings, stepWarnings...)
	result.Warnings = append(result.Warnings, validateOptions(p)...)
	return result
}

// ---------------------------------------------------------------------------
// Range checks
// ---------------------------------------------------------------------------

func errorf(field, format string, args ...any) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func numericFields(p Params) map[string]float64 {
	return map[string]float64{
		"height":          p.Height,
		"width":           p.Width,
		"walkpath_radius": p.WalkpathRadius,
		"inside_radius":   p.InsideRadius,
		"angle":           p.Angle,
		"stair_thickness": p.StairThickness,
		"front_reserve":   p.FrontReserve,
		"flight1_length":  p.Flight1Length,
		"flight2_length":  p.Flight2Length,
		"overlap_length":  p.OverlapLength,
		"riser_thickness": p.RiserThickness,
		"riser_groove":    p.RiserGroove,
		"riser_rabbet":    p.RiserRabbet,
		"balance_prop1":   p.BalanceProp1,
		"balance_prop2":   p.BalanceProp2,
		"balance_delta":   p.BalanceDelta,
	}
}

func isFinite(p Params) bool {
	return len(validateFinite(p)) == 0
}

// validateFinite rejects NaN and infinite values before any range check.
func validateFinite(p Params) []ValidationError {
	var errs []ValidationError
	fields := numericFields(p)
	for _, name := range fieldOrder {
		v := fields[name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, errorf(name, "must be a finite number, got %v", v))
		}
	}
	return errs
}

// fieldOrder keeps findings in a stable order.
var fieldOrder = []string{
	"height", "width", "walkpath_radius", "inside_radius", "angle",
	"stair_thickness", "front_reserve", "flight1_length", "flight2_length",
	"overlap_length", "riser_thickness", "riser_groove", "riser_rabbet",
	"balance_prop1", "balance_prop2", "balance_delta",
}

func validateDimensions(p Params) []ValidationError {
	var errs []ValidationError
	if p.Height < 200 {
		errs = append(errs, errorf("height", "is %.1f, must be at least 200", p.Height))
	}
	if p.Width < 400 {
		errs = append(errs, errorf("width", "is %.1f, must be at least 400", p.Width))
	}
	if p.WalkpathRadius < 200 {
		errs = append(errs, errorf("walkpath_radius", "is %.1f, must be at least 200", p.WalkpathRadius))
	}
	if p.WalkpathRadius >= p.Width {
		errs = append(errs, errorf("walkpath_radius", "is %.1f, must be less than the width %.1f", p.WalkpathRadius, p.Width))
	}
	if p.InsideRadius < 1 {
		errs = append(errs, errorf("inside_radius", "is %.1f, must be at least 1", p.InsideRadius))
	}
	if p.FrontReserve < 0 {
		errs = append(errs, errorf("front_reserve", "is %.1f, must not be negative", p.FrontReserve))
	}
	return errs
}

func validateAngles(p Params) []ValidationError {
	var errs []ValidationError
	if math.Abs(p.Angle) > AngleLimit {
		errs = append(errs, errorf("angle", "is %.1f, must be between %.0f and %.0f degrees", p.Angle, -AngleLimit, AngleLimit))
	}
	if math.Abs(p.BalanceDelta) > BalanceDeltaMax {
		errs = append(errs, errorf("balance_delta", "is %.1f, must be between %.0f and %.0f degrees", p.BalanceDelta, -BalanceDeltaMax, BalanceDeltaMax))
	}
	return errs
}

func validateBoards(p Params) []ValidationError {
	var errs []ValidationError
	if p.StairThickness < 10 {
		errs = append(errs, errorf("stair_thickness", "is %.1f, must be at least 10", p.StairThickness))
	}
	if p.Overlap && (p.OverlapLength < 10 || p.OverlapLength > 100) {
		errs = append(errs, errorf("overlap_length", "is %.1f, must be between 10 and 100", p.OverlapLength))
	}
	if p.RiserThickness < 0 || p.RiserThickness > 50 {
		errs = append(errs, errorf("riser_thickness", "is %.1f, must be between 0 and 50", p.RiserThickness))
	}
	if p.RiserGroove < 0 {
		errs = append(errs, errorf("riser_groove", "is %.1f, must not be negative", p.RiserGroove))
	}
	if p.RiserRabbet < 0 {
		errs = append(errs, errorf("riser_rabbet", "is %.1f, must not be negative", p.RiserRabbet))
	}
	return errs
}

func validateFlights(p Params) []ValidationError {
	var errs []ValidationError
	if p.Flight1Length < 0 {
		errs = append(errs, errorf("flight1_length", "is %.1f, must not be negative", p.Flight1Length))
	}
	if p.Flight2Length <= 0 {
		errs = append(errs, errorf("flight2_length", "is %.1f, must be positive", p.Flight2Length))
	}
	if !p.IsTurning() {
		return errs
	}
	minimum := p.FlightLengthMinimum()
	if p.Flight1Length < minimum {
		errs = append(errs, errorf("flight1_length", "is %.1f, a %.0f degree turn needs at least %.1f", p.Flight1Length, p.Angle, minimum))
	}
	if p.Flight2Length < minimum {
		errs = append(errs, errorf("flight2_length", "is %.1f, a %.0f degree turn needs at least %.1f", p.Flight2Length, p.Angle, minimum))
	}
	return errs
}

func validateBalance(p Params) []ValidationError {
	var errs []ValidationError
	if p.BalanceProp1 < 0 || p.BalanceProp1 > 100 {
		errs = append(errs, errorf("balance_prop1", "is %.1f, must be between 0 and 100", p.BalanceProp1))
	}
	if p.BalanceProp2 < 0 || p.BalanceProp2 > 100 {
		errs = append(errs, errorf("balance_prop2", "is %.1f, must be between 0 and 100", p.BalanceProp2))
	}
	return errs
}

// ---------------------------------------------------------------------------
// Comfort rules
// ---------------------------------------------------------------------------

// validateStepNumber checks a step count override. Counts outside the
// comfortable riser range are warnings; counts far outside it are errors.
func validateStepNumber(p Params) ([]ValidationError, []ValidationWarning) {
	if p.StepNumber == 0 {
		return nil, nil
	}
	mini, maxi := StepNumberRange(p.Height)
	lower := max(2, mini-1)
	upper := maxi + 3

	if p.StepNumber < lower || p.StepNumber > upper {
		return []ValidationError{errorf("step_number", "is %d, must be between %d and %d", p.StepNumber, lower, upper)}, nil
	}
	if p.StepNumber < mini || p.StepNumber > maxi {
		riser := p.Height / float64(p.StepNumber+1)
		return nil, []ValidationWarning{{
			Field:   "step_number",
			Message: fmt.Sprintf("%d steps give a %.1f riser, outside %.0f-%.0f", p.StepNumber, riser, RiserHeightMin, RiserHeightMax),
		}}
	}
	return nil, nil
}

// validateOptions flags options that are switched on but have no effect.
func validateOptions(p Params) []ValidationWarning {
	var warnings []ValidationWarning
	if p.Riser && p.RiserThickness == 0 {
		warnings = append(warnings, ValidationWarning{
			Field:   "riser_thickness",
			Message: "risers are enabled with zero thickness and will be ignored",
		})
	}
	if p.IsRiserStair() && p.RiserRabbet >= p.RiserThickness {
		warnings = append(warnings, ValidationWarning{
			Field:   "riser_rabbet",
			Message: fmt.Sprintf("rabbet %.1f is not smaller than the riser thickness %.1f", p.RiserRabbet, p.RiserThickness),
		})
	}
	if p.OverlapLast && !p.IsOverlapStair() {
		warnings = append(warnings, ValidationWarning{
			Field:   "overlap_last",
			Message: "last-step overlap has no effect without an overlap",
		})
	}
	if p.IsTurning() && p.WalkpathRadius > WalkpathMaxRadius(p.Width) {
		warnings = append(warnings, ValidationWarning{
			Field:   "walkpath_radius",
			Message: fmt.Sprintf("is %.1f, balancing assumes at most %.1f", p.WalkpathRadius, WalkpathMaxRadius(p.Width)),
		})
	}
	return warnings
}
