// math/vecmat.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// Various useful functions for arithmetic with 2D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

// a-b
func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

// a*s
func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Dot(a, b [2]float32) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

// Cross2f returns the z component of the 3D cross product of a and b
// (promoted to the z=0 plane); in the x=north, y=east frame it is
// positive if b lies clockwise (to the right) of a.
func Cross2f(a, b [2]float32) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

// Length of v
func Length2f(v [2]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Normalizes the given vector.
func Normalize2f(a [2]float32) [2]float32 {
	l := Length2f(a)
	if l == 0 {
		return [2]float32{0, 0}
	}
	return Scale2f(a, 1/l)
}

// Perp2f returns v rotated 90 degrees clockwise (a right-handed quarter
// turn in the x=north, y=east plane).
func Perp2f(v [2]float32) [2]float32 {
	return [2]float32{-v[1], v[0]}
}

// Equivalent to acos(Dot(a, b)), but more numerically stable.
// via http://www.plunk.org/~hatch/rightway.html
func AngleBetween(v1, v2 [2]float32) float32 {
	asin := func(a float32) float32 {
		return float32(gomath.Asin(float64(Clamp(a, -1, 1))))
	}

	if Dot(v1, v2) < 0 {
		return gomath.Pi - 2*asin(Length2f(Add2f(v1, v2))/2)
	} else {
		return 2 * asin(Length2f(Sub2f(v2, v1))/2)
	}
}
