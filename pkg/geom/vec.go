// Package geom provides the planar geometry used to lay out stair steps:
// line and arc segments, connected curves with arc-length parametrisation,
// and line/curve intersection.
//
// Points and vectors are sdfx v2.Vec values. All lengths are millimetres
// and all angles are radians, counter-clockwise positive.
package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Epsilon is the length tolerance used when comparing distances.
const Epsilon = 1e-6

// ConnectTolerance is the maximum gap between two segment ends that are
// still considered connected.
const ConnectTolerance = 1e-3

// Vec is a 2D point or vector.
type Vec = v2.Vec

// Cross returns the z component of the cross product a x b.
func Cross(a, b Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Perp returns v rotated by +90 degrees.
func Perp(v Vec) Vec {
	return Vec{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated by angle radians.
func Rotate(v Vec, angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// RotateAbout rotates p by angle radians around center.
func RotateAbout(p, center Vec, angle float64) Vec {
	return center.Add(Rotate(p.Sub(center), angle))
}

// Polar returns the unit vector at angle radians.
func Polar(angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{X: c, Y: s}
}

// Unit returns v scaled to length 1. It reports false for a zero vector.
func Unit(v Vec) (Vec, bool) {
	l := v.Length()
	if l < Epsilon {
		return Vec{}, false
	}
	return v.MulScalar(1 / l), true
}

// Dist returns the distance between a and b.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Length()
}

// Near reports whether a and b are within tol of each other.
func Near(a, b Vec, tol float64) bool {
	return Dist(a, b) <= tol
}

// OffsetPerpendicular rotates the vector a->b by -90 degrees (distance > 0)
// or +90 degrees (distance < 0) around a and returns the point at |distance|
// from a along the rotated direction. A zero-length a->b returns a.
func OffsetPerpendicular(a, b Vec, distance float64) Vec {
	u, ok := Unit(b.Sub(a))
	if !ok || distance == 0 {
		return a
	}
	angle := math.Pi / 2
	if distance > 0 {
		angle = -angle
	}
	return a.Add(Rotate(u, angle).MulScalar(math.Abs(distance)))
}

// normalizeAngle maps a into [0, 2*pi).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
