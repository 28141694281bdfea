// Package vmath holds the small float32 helpers shared by the raycaster and
// the brush operators.
package vmath

import "math"

// Vec2 is a point or direction in field coordinates.
type Vec2 struct {
	X, Y float32
}

// V is shorthand for Vec2{x, y}.
func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Norm returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0)
}

// Rotate turns v by the given angle in radians. Positive angles rotate
// clockwise in a y-down coordinate system.
func (v Vec2) Rotate(radians float32) Vec2 {
	sin, cos := math.Sincos(float64(radians))
	s, c := float32(sin), float32(cos)
	return Vec2{
		X: v.X*c + v.Y*s,
		Y: -v.X*s + v.Y*c,
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// MapValue linearly remaps v from [inMin, inMax] to [outMin, outMax].
// The input range must not be empty.
func MapValue(v, inMin, inMax, outMin, outMax float32) float32 {
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Gaussian evaluates e^(-x^2).
func Gaussian(x float32) float32 {
	return float32(math.Exp(float64(-x * x)))
}

// EaseInOutCubic maps [0,1] onto an S-curve that flattens near both ends.
func EaseInOutCubic(x float32) float32 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	f := -2*x + 2
	return 1 - f*f*f/2
}

// Lerp interpolates from a to b by t.
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]. NaN maps to 0.
func Clamp01(v float32) float32 {
	if v != v {
		return 0
	}
	return Clamp(v, 0, 1)
}

// ClampInt restricts v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
