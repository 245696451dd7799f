package common

import (
	"github.com/chewxy/math32"
)

// Sub3 returns a - b.
//
// Parameters:
//   - a, b: the vectors to subtract
//
// Returns:
//   - [3]float32: the component-wise difference
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Length3 returns the Euclidean length of v.
//
// Parameters:
//   - v: the vector to measure
//
// Returns:
//   - float32: |v|
func Length3(v [3]float32) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Distance3 returns the Euclidean distance between a and b.
//
// Parameters:
//   - a, b: the two points
//
// Returns:
//   - float32: |a - b|
func Distance3(a, b [3]float32) float32 {
	return Length3(Sub3(a, b))
}

// Normalize3 returns v scaled to unit length. A zero vector is returned unchanged.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - [3]float32: the normalized vector
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// Lerp3 linearly interpolates from a toward b by the fraction t.
// t = 0 returns a, t = 1 returns b.
//
// Parameters:
//   - a: the start point
//   - b: the destination point
//   - t: the interpolation fraction
//
// Returns:
//   - [3]float32: a + (b - a) * t
func Lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Radians converts an angle in degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * math32.Pi / 180
}
