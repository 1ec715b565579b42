// Package design holds the scalar stair parameters, their defaults and the
// rules that decide whether a parameter set can be laid out.
//
// Lengths are millimetres. Angles are degrees; positive angles turn right
// when climbing.
package design

import "math"

// Blondel's law and riser limits.
const (
	BlondelIdeal    = 630.0 // 2 x riser + going, mm
	RiserHeightMin  = 150.0
	RiserHeightMax  = 200.0
	WalkpathMaxCap  = 500.0 // upper bound of the balancing walkpath radius
	AngleLimit      = 120.0
	BalanceDeltaMax = 20.0
)

// Params is the flat parameter record describing one stair.
type Params struct {
	Height         float64 `yaml:"height" json:"height"`
	Width          float64 `yaml:"width" json:"width"`
	WalkpathRadius float64 `yaml:"walkpath_radius" json:"walkpathRadius"` // walkpath distance from the inside string
	InsideRadius   float64 `yaml:"inside_radius" json:"insideRadius"`
	Angle          float64 `yaml:"angle" json:"angle"`

	// StepNumber overrides the optimal step count when > 0.
	StepNumber     int     `yaml:"step_number" json:"stepNumber"`
	StairThickness float64 `yaml:"stair_thickness" json:"stairThickness"`
	FrontReserve   float64 `yaml:"front_reserve" json:"frontReserve"`

	Flight1Length float64 `yaml:"flight1_length" json:"flight1Length"`
	Flight2Length float64 `yaml:"flight2_length" json:"flight2Length"`

	Overlap       bool    `yaml:"overlap" json:"overlap"`
	OverlapLength float64 `yaml:"overlap_length" json:"overlapLength"`
	OverlapLast   bool    `yaml:"overlap_last" json:"overlapLast"`

	Riser          bool    `yaml:"riser" json:"riser"`
	RiserThickness float64 `yaml:"riser_thickness" json:"riserThickness"`
	RiserGroove    float64 `yaml:"riser_groove" json:"riserGroove"`
	RiserRabbet    float64 `yaml:"riser_rabbet" json:"riserRabbet"`

	BalanceProp1 float64 `yaml:"balance_prop1" json:"balanceProp1"` // percent
	BalanceProp2 float64 `yaml:"balance_prop2" json:"balanceProp2"` // percent
	BalanceDelta float64 `yaml:"balance_delta" json:"balanceDelta"`
}

// Defaults returns the parameter set of a quarter-turn stair.
func Defaults() Params {
	return Params{
		Height:         3000,
		Width:          1000,
		WalkpathRadius: 500,
		InsideRadius:   1,
		Angle:          90,
		StairThickness: 40,
		FrontReserve:   0,
		Flight1Length:  3000,
		Flight2Length:  3000,
		Overlap:        true,
		OverlapLength:  30,
		OverlapLast:    true,
		Riser:          false,
		RiserThickness: 19,
		RiserGroove:    8,
		RiserRabbet:    5,
		BalanceProp1:   50,
		BalanceProp2:   50,
		BalanceDelta:   0,
	}
}

// IsOverlapStair reports whether treads get a nosing overlap.
func (p Params) IsOverlapStair() bool {
	return p.Overlap && p.OverlapLength > 0
}

// IsRiserStair reports whether the stair has riser boards.
func (p Params) IsRiserStair() bool {
	return p.Riser && p.RiserThickness > 0
}

// IsTurning reports whether the two flights are joined by a turn.
func (p Params) IsTurning() bool {
	return p.Angle != 0
}

// AngleRad returns the turn angle in radians.
func (p Params) AngleRad() float64 { return Radians(p.Angle) }

// DeltaRad returns the balance delta in radians.
func (p Params) DeltaRad() float64 { return Radians(p.BalanceDelta) }

// TurnSign is +1 for right turns and straight stairs, -1 for left turns.
func (p Params) TurnSign() float64 {
	if p.Angle < 0 {
		return -1
	}
	return 1
}

// StartLength is the walkpath length consumed before the first step line.
func (p Params) StartLength() float64 {
	l := p.FrontReserve
	if p.IsOverlapStair() {
		l += p.OverlapLength
	}
	return l
}

// FlightLengthMinimum is the shortest flight that still leaves room for the
// turn on the outside string.
func (p Params) FlightLengthMinimum() float64 {
	l := math.Sin(math.Abs(p.AngleRad())) * (p.Width + p.InsideRadius)
	if p.IsOverlapStair() {
		l += p.OverlapLength
	}
	return l
}

// WalkpathMaxRadius returns the walkpath radius used by the harrow method:
// half the stair width, capped at WalkpathMaxCap.
func WalkpathMaxRadius(width float64) float64 {
	return math.Min(width/2, WalkpathMaxCap)
}

// StepNumberRange returns the step counts whose riser height lies between
// RiserHeightMin and RiserHeightMax for the given stair height.
func StepNumberRange(height float64) (mini, maxi int) {
	mini = int(math.Ceil(height/RiserHeightMax)) - 1
	maxi = int(math.Floor(height/RiserHeightMin)) - 1
	return mini, maxi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
