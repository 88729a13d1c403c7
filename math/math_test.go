// math/math_test.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestTranscendentalAccuracy(t *testing.T) {
	// The polynomial approximations should stay within a few ulps over
	// their reduced ranges and within loose absolute bounds overall.
	for x := float32(-2 * Pi); x < 2*Pi; x += 0.001 {
		if d := Abs(Sin(x) - float32(gomath.Sin(float64(x)))); d > 1e-5 {
			t.Fatalf("Sin(%v): error %v", x, d)
		}
		if d := Abs(Cos(x) - float32(gomath.Cos(float64(x)))); d > 1e-5 {
			t.Fatalf("Cos(%v): error %v", x, d)
		}
		if d := Abs(Atan(x) - float32(gomath.Atan(float64(x)))); d > 1e-5 {
			t.Fatalf("Atan(%v): error %v", x, d)
		}
	}
}

func TestSinCos(t *testing.T) {
	for x := float32(-Pi); x < Pi; x += 0.01 {
		sc := SinCos(x)
		if d := Abs(sc[0] - Sin(x)); d > 1e-6 {
			t.Fatalf("SinCos(%v)[0] = %v, Sin = %v", x, sc[0], Sin(x))
		}
		if d := Abs(sc[1] - Cos(x)); d > 1e-6 {
			t.Fatalf("SinCos(%v)[1] = %v, Cos = %v", x, sc[1], Cos(x))
		}
	}
}

func TestSafeInverseTrig(t *testing.T) {
	// Arguments slightly outside [-1,1] from accumulated roundoff must
	// not return NaN.
	if v := SafeASin(1.0001); v != PiOver2 {
		t.Errorf("SafeASin(1.0001) = %v", v)
	}
	if v := SafeACos(-1.0001); v != Pi {
		t.Errorf("SafeACos(-1.0001) = %v", v)
	}
	if d := Abs(SafeASin(0.5) - float32(gomath.Asin(0.5))); d > 1e-5 {
		t.Errorf("SafeASin(0.5): error %v", d)
	}
}

func TestAtan2Quadrants(t *testing.T) {
	cases := [][3]float32{
		{1, 1, PiOver4},
		{1, -1, 3 * PiOver4},
		{-1, -1, -3 * PiOver4},
		{-1, 1, -PiOver4},
		{0, 1, 0},
		{1, 0, PiOver2},
	}
	for _, c := range cases {
		if d := Abs(Atan2(c[0], c[1]) - c[2]); d > 1e-5 {
			t.Errorf("Atan2(%v, %v) = %v, expected %v", c[0], c[1],
				Atan2(c[0], c[1]), c[2])
		}
	}
}

func TestVectorOps(t *testing.T) {
	a, b := [2]float32{3, 4}, [2]float32{-1, 2}

	if v := Add2f(a, b); v != [2]float32{2, 6} {
		t.Errorf("Add2f: %v", v)
	}
	if v := Sub2f(a, b); v != [2]float32{4, 2} {
		t.Errorf("Sub2f: %v", v)
	}
	if v := Scale2f(a, 2); v != [2]float32{6, 8} {
		t.Errorf("Scale2f: %v", v)
	}
	if v := Dot(a, b); v != 5 {
		t.Errorf("Dot: %v", v)
	}
	if v := Cross2f(a, b); v != 10 {
		t.Errorf("Cross2f: %v", v)
	}
	if v := Length2f(a); v != 5 {
		t.Errorf("Length2f: %v", v)
	}
}

func TestNormalize2f(t *testing.T) {
	if v := Normalize2f([2]float32{3, 4}); Abs(Length2f(v)-1) > 1e-6 {
		t.Errorf("Normalize2f: length %v", Length2f(v))
	}
	if v := Normalize2f([2]float32{0, 0}); v != ([2]float32{}) {
		t.Errorf("Normalize2f of zero vector: %v", v)
	}
}

func TestPerp2f(t *testing.T) {
	// Perp2f rotates clockwise by 90 degrees in the [north, east] frame.
	if v := Perp2f([2]float32{1, 0}); v != ([2]float32{0, 1}) {
		t.Errorf("Perp2f(north) = %v", v)
	}
	a := [2]float32{0.6, -0.8}
	if d := Dot(a, Perp2f(a)); d != 0 {
		t.Errorf("Perp2f not orthogonal: dot %v", d)
	}
}

func TestAngleBetween(t *testing.T) {
	n, e := [2]float32{1, 0}, [2]float32{0, 1}
	if d := Abs(AngleBetween(n, e) - PiOver2); d > 1e-5 {
		t.Errorf("AngleBetween(n, e) = %v", AngleBetween(n, e))
	}
	if d := Abs(AngleBetween(n, [2]float32{-1, 0}) - Pi); d > 1e-4 {
		t.Errorf("AngleBetween(n, -n) = %v", AngleBetween(n, [2]float32{-1, 0}))
	}
	if v := AngleBetween(n, n); v != 0 {
		t.Errorf("AngleBetween(n, n) = %v", v)
	}
}

func TestScalarHelpers(t *testing.T) {
	if v := Clamp(5, 0, 3); v != 3 {
		t.Errorf("Clamp: %v", v)
	}
	if v := Clamp(-1, 0, 3); v != 0 {
		t.Errorf("Clamp: %v", v)
	}
	if v := Lerp(float32(0.25), 0, 8); v != 2 {
		t.Errorf("Lerp: %v", v)
	}
	if IsFinite(Infinity) || IsFinite(float32(gomath.NaN())) || !IsFinite(1) {
		t.Error("IsFinite broken")
	}
	if d := Abs(Radians(180) - Pi); d > 1e-6 {
		t.Errorf("Radians(180) = %v", Radians(180))
	}
	if d := Abs(Degrees(Pi) - 180); d > 1e-4 {
		t.Errorf("Degrees(Pi) = %v", Degrees(Pi))
	}
}

func TestPlanarDisplacementRoundTrip(t *testing.T) {
	origin := Point2LL{-75.2749, 39.8609}

	for _, disp := range [][2]float32{{1000, 0}, {0, 1000}, {-500, 750}, {2000, -2000}} {
		p := Offset2LL(origin, disp)
		got := PlanarDisplacement(origin, p)
		if Abs(got[0]-disp[0]) > 1 || Abs(got[1]-disp[1]) > 1 {
			t.Errorf("round trip of %v: got %v", disp, got)
		}
	}
}

func TestPlanarDisplacementDirections(t *testing.T) {
	origin := Point2LL{-75, 40}

	// A point to the north has a larger latitude.
	north := Point2LL{-75, 40.01}
	d := PlanarDisplacement(origin, north)
	if d[0] <= 0 || Abs(d[1]) > 1 {
		t.Errorf("north displacement %v", d)
	}

	// A point to the east has a larger longitude.
	east := Point2LL{-74.99, 40}
	d = PlanarDisplacement(origin, east)
	if d[1] <= 0 || Abs(d[0]) > 1 {
		t.Errorf("east displacement %v", d)
	}
}
