// guidance/feasibility_test.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"testing"

	"github.com/mmp/flightpath/math"
)

func TestBearingFeasibilityMonotonic(t *testing.T) {
	c := NewController(DefaultConfig())

	// For a fixed crosswind geometry, feasibility must be non-increasing
	// in the wind ratio, 1 at zero wind, and 0 beyond the upper barrier.
	const airspeed = 15
	for _, bearing := range []struct {
		name     string
		sinAngle float32 // sine of the angle between wind and bearing
	}{
		{"beam wind", 1},
		{"quartering", 0.7071},
		{"nearly aligned", 0.1},
	} {
		prev := float32(2)
		for i := 0; i <= 300; i++ {
			windRatio := float32(i) / 100
			windSpeed := windRatio * airspeed
			windCross := windSpeed * bearing.sinAngle
			windDot := windSpeed * math.Sqrt(1-math.Sqr(bearing.sinAngle))

			feas := c.bearingFeasibility(windCross, windDot, windSpeed, windRatio)
			if feas < 0 || feas > 1 {
				t.Fatalf("%s: feasibility %g out of [0,1]", bearing.name, feas)
			}
			if feas > prev+1e-6 {
				t.Errorf("%s: feasibility not monotonic at wind ratio %g: %g > %g",
					bearing.name, windRatio, feas, prev)
			}
			prev = feas
		}

		if feas := c.bearingFeasibility(0, 0, 0, 0); feas != 1 {
			t.Errorf("%s: feasibility %g at zero wind, expected 1", bearing.name, feas)
		}
	}
}

func TestBearingFeasibilityBarriers(t *testing.T) {
	c := NewController(DefaultConfig())

	// Wind dead against the bearing: sin of the crosswind angle is held at
	// 1, so the upper barrier is a wind ratio of exactly 1 and the lower
	// barrier is 1 - WindRatioBuffer.
	const windSpeed = 25
	lb := 1 - c.WindRatioBuffer

	if feas := c.bearingFeasibility(0, -windSpeed, windSpeed, lb-0.01); feas != 1 {
		t.Errorf("below lower barrier: feasibility %g, expected 1", feas)
	}
	if feas := c.bearingFeasibility(0, -windSpeed, windSpeed, 1); feas > 1e-6 {
		t.Errorf("at upper barrier: feasibility %g, expected 0", feas)
	}
	if feas := c.bearingFeasibility(0, -windSpeed, windSpeed, 1.5); feas != 0 {
		t.Errorf("above upper barrier: feasibility %g, expected 0", feas)
	}

	// Mid-band: the squared cosine transition at the band center.
	mid := (lb + 1) / 2
	expected := math.Sqr(math.Cos(math.Pi * 0.25))
	if feas := c.bearingFeasibility(0, -windSpeed, windSpeed, mid); math.Abs(feas-expected) > 1e-3 {
		t.Errorf("band center: feasibility %g, expected %g", feas, expected)
	}
}

func TestBearingFeasibilitySmallAngleBranch(t *testing.T) {
	c := NewController(DefaultConfig())

	// The linear small-angle branch and the 1/sin branch must agree at the
	// cutoff to first order: probe just either side of it with a wind
	// ratio inside the transition band (near the cutoff the band spans
	// roughly ratios 2.8 to 20 with the default buffer).
	const windSpeed = 20
	windDot := float32(windSpeed) // wind aiding, so the sine path is used

	feasBelow := c.bearingFeasibility(windSpeed*(sinCrossWindCutoff-1e-4), windDot, windSpeed, 5)
	feasAbove := c.bearingFeasibility(windSpeed*(sinCrossWindCutoff+1e-4), windDot, windSpeed, 5)
	if math.Abs(feasBelow-feasAbove) > 1e-2 {
		t.Errorf("feasibility jumps across small-angle cutoff: %g vs %g", feasBelow, feasAbove)
	}

	// Directly downwind (zero crosswind) a wind ratio well above 1 is
	// still fully feasible; the linear barrier extension keeps the
	// barriers finite instead of dividing by zero.
	if feas := c.bearingFeasibility(0, windDot, windSpeed, 1.5); feas != 1 {
		t.Errorf("downwind feasibility %g, expected 1", feas)
	}
}

func TestBearingIsFeasible(t *testing.T) {
	for _, tc := range []struct {
		name                string
		windCross, windDot  float32
		airspeed, windSpeed float32
		expected            bool
	}{
		{"no wind", 0, 0, 15, 0, true},
		{"light headwind", 0, -5, 15, 5, true},
		{"headwind equals airspeed", 0, -15, 15, 15, false},
		{"headwind exceeds airspeed", 0, -20, 15, 20, false},
		{"tailwind exceeds airspeed", 0, 20, 15, 20, true},
		{"crosswind below airspeed", 10, 5, 15, 11.2, true},
		{"crosswind equals airspeed", 15, 5, 15, 15.8, false},
		{"crosswind exceeds airspeed", 20, 5, 15, 20.6, false},
	} {
		got := bearingIsFeasible(tc.windCross, tc.windDot, tc.airspeed, tc.windSpeed)
		if got != tc.expected {
			t.Errorf("%s: bearingIsFeasible = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}
