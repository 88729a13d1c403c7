// guidance/windtriangle_test.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"testing"

	"github.com/mmp/flightpath/math"
)

func TestSolveWindTriangle(t *testing.T) {
	// The solution dotted with the unit bearing vector must reproduce the
	// along component; its cross with the bearing must reproduce the
	// cross component. This is an exact analytic identity.
	bearings := [][2]float32{{1, 0}, {0, 1}, {-1, 0}, {0.7071, 0.7071}, {0.6, -0.8}}
	components := []struct{ cross, along float32 }{
		{0, 15}, {5, 10}, {-8, 3}, {12, 0}, {-2, -7},
	}

	for _, b := range bearings {
		for _, comp := range components {
			v := solveWindTriangle(comp.cross, comp.along, b)

			if along := math.Dot(v, b); math.Abs(along-comp.along) > 1e-4 {
				t.Errorf("bearing %v cross %g along %g: got along %g",
					b, comp.cross, comp.along, along)
			}
			if cross := math.Cross2f(b, v); math.Abs(cross-comp.cross) > 1e-4 {
				t.Errorf("bearing %v cross %g along %g: got cross %g",
					b, comp.cross, comp.along, cross)
			}
		}
	}
}

func TestProjectAirspeedOnBearing(t *testing.T) {
	if p := projectAirspeedOnBearing(15, 0); p != 15 {
		t.Errorf("no crosswind: got %g, expected 15", p)
	}
	if p := projectAirspeedOnBearing(15, 9); math.Abs(p-12) > 1e-5 {
		t.Errorf("3-4-5 triangle: got %g, expected 12", p)
	}
	// Clamped rather than NaN when misused with crosswind above airspeed.
	if p := projectAirspeedOnBearing(10, 15); p != 0 {
		t.Errorf("excess crosswind: got %g, expected 0", p)
	}
}

func TestInfeasibleAirVelRef(t *testing.T) {
	bearing := [2]float32{1, 0}

	// The mitigation output always has exactly the given airspeed.
	for _, tc := range []struct {
		name     string
		windVel  [2]float32
		airspeed float32
	}{
		{"direct headwind", [2]float32{-25, 0}, 15},
		{"quartering excess wind", [2]float32{-20, 15}, 15},
		{"beam excess wind", [2]float32{0, 30}, 20},
	} {
		windSpeed := math.Length2f(tc.windVel)
		v := infeasibleAirVelRef(tc.windVel, bearing, windSpeed, tc.airspeed)
		if math.Abs(math.Length2f(v)-tc.airspeed) > 1e-3 {
			t.Errorf("%s: |air vel ref| = %g, expected %g", tc.name, math.Length2f(v), tc.airspeed)
		}
	}

	// Wind dead against the bearing: the best the aircraft can do is
	// point straight along the bearing and lose ground.
	v := infeasibleAirVelRef([2]float32{-25, 0}, bearing, 25, 15)
	if math.AngleBetween(v, bearing) > 1e-3 {
		t.Errorf("headwind mitigation points %v, expected along %v", v, bearing)
	}
}

func TestMinGroundSpeed(t *testing.T) {
	config := DefaultConfig()
	config.EnableTrackKeeping = true
	config.EnableMinGroundSpeed = true
	config.EnableWindExcessRegulation = true
	config.TrackKeepingGSMax = 5
	config.MinGroundSpeed = 3
	config.InvNTEFraction = 2
	c := NewController(config)

	// Feasible bearing: no track keeping demand, only the flat minimum.
	if gs := c.minGroundSpeed(1, 1); gs != 3 {
		t.Errorf("feasible: min ground speed %g, expected 3", gs)
	}

	// Infeasible bearing at full track error: full track keeping demand.
	if gs := c.minGroundSpeed(1, 0); gs != 5 {
		t.Errorf("infeasible far: min ground speed %g, expected 5", gs)
	}

	// Demand scales with normalized track error, saturating at 1/InvNTEFraction.
	if gs := c.minGroundSpeed(0.25, 0); math.Abs(gs-2.5) > 1e-5 {
		t.Errorf("infeasible near: min ground speed %g, expected 2.5", gs)
	}
	if gs := c.minGroundSpeed(0.75, 0); gs != 5 {
		t.Errorf("saturated: min ground speed %g, expected 5", gs)
	}

	// Without wind excess regulation neither demand applies.
	c.EnableWindExcessRegulation = false
	if gs := c.minGroundSpeed(1, 0); gs != 0 {
		t.Errorf("regulation disabled: min ground speed %g, expected 0", gs)
	}
}

func TestClassifyAirVelRef(t *testing.T) {
	// Nominal 15, maximum 25 in all cases; bearing along +x.
	for _, tc := range []struct {
		name           string
		config         func(*Config)
		windCross      float32
		windDot        float32
		minGroundSpeed float32
		expected       AirVelRefRegime
	}{
		{"no wind", nil, 0, 0, 0, RegimeNominal},
		{"light crosswind", nil, 5, 0, 0, RegimeNominal},
		{"strong headwind, regulation on", nil, 0, -20, 0, RegimeWindExcessHold},
		{"beam wind above nominal", nil, 20, 0, 0, RegimeWindExcessHold},
		{"crosswind above nominal, aiding", nil, 18, 5, 0, RegimeWindExcessMinAirspeed},
		{"wind beyond max airspeed", nil, 0, -30, 0, RegimeInfeasible},
		{"crosswind beyond max airspeed", nil, 26, 5, 0, RegimeInfeasible},
		{"strong headwind, regulation off",
			func(c *Config) { c.EnableWindExcessRegulation = false }, 0, -20, 0, RegimeInfeasible},
		{"min gsp within nominal",
			func(c *Config) { c.EnableMinGroundSpeed = true }, 0, -10, 5, RegimeNominal},
		{"min gsp needs airspeed increment",
			func(c *Config) { c.EnableMinGroundSpeed = true }, 0, -12, 5, RegimeMinGroundSpeed},
		{"min gsp beyond max, bearing holds",
			func(c *Config) { c.EnableMinGroundSpeed = true }, 0, -22, 5, RegimeMaxAirspeed},
		{"min gsp beyond max, bearing lost",
			func(c *Config) { c.EnableMinGroundSpeed = true }, 0, -26, 5, RegimeInfeasible},
	} {
		config := DefaultConfig()
		config.AirspeedNom = 15
		config.AirspeedMax = 25
		if tc.config != nil {
			tc.config(&config)
		}
		c := NewController(config)

		windSpeed := math.Sqrt(tc.windCross*tc.windCross + tc.windDot*tc.windDot)
		got := c.classifyAirVelRef(tc.windCross, tc.windDot, windSpeed, tc.minGroundSpeed)
		if got != tc.expected {
			t.Errorf("%s: regime %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestRefAirVelocityRegimes(t *testing.T) {
	bearing := [2]float32{1, 0}
	config := DefaultConfig()
	config.AirspeedNom = 15
	config.AirspeedMax = 25
	c := NewController(config)

	// Nominal regime: the reference has nominal airspeed and makes good
	// the bearing.
	windVel := [2]float32{0, 5} // 5 m/s beam wind
	regime, v := c.refAirVelocity(windVel, bearing, math.Cross2f(windVel, bearing),
		math.Dot(windVel, bearing), 5, 0)
	if regime != RegimeNominal {
		t.Fatalf("regime %v, expected nominal", regime)
	}
	if math.Abs(math.Length2f(v)-15) > 1e-3 {
		t.Errorf("|air vel ref| = %g, expected 15", math.Length2f(v))
	}
	gv := math.Add2f(v, windVel)
	if math.AngleBetween(gv, bearing) > 1e-3 {
		t.Errorf("ground velocity %v not along bearing %v", gv, bearing)
	}

	// Wind excess hold: the reference matches the wind exactly.
	windVel = [2]float32{-20, 0}
	regime, v = c.refAirVelocity(windVel, bearing, math.Cross2f(windVel, bearing),
		math.Dot(windVel, bearing), 20, 0)
	if regime != RegimeWindExcessHold {
		t.Fatalf("regime %v, expected wind excess hold", regime)
	}
	if v != windVel {
		t.Errorf("air vel ref %v, expected wind %v", v, windVel)
	}

	// Wind excess with aiding component: minimal airspeed, still on the
	// bearing line.
	windVel = [2]float32{5, 18}
	regime, v = c.refAirVelocity(windVel, bearing, math.Cross2f(windVel, bearing),
		math.Dot(windVel, bearing), math.Length2f(windVel), 0)
	if regime != RegimeWindExcessMinAirspeed {
		t.Fatalf("regime %v, expected wind excess min airspeed", regime)
	}
	gv = math.Add2f(v, windVel)
	if math.AngleBetween(gv, bearing) > 1e-3 {
		t.Errorf("ground velocity %v not along bearing %v", gv, bearing)
	}

	// Min ground speed regime: the along-bearing ground speed matches the
	// demand.
	config.EnableMinGroundSpeed = true
	c = NewController(config)
	windVel = [2]float32{-12, 0}
	regime, v = c.refAirVelocity(windVel, bearing, math.Cross2f(windVel, bearing),
		math.Dot(windVel, bearing), 12, 5)
	if regime != RegimeMinGroundSpeed {
		t.Fatalf("regime %v, expected min ground speed", regime)
	}
	gv = math.Add2f(v, windVel)
	if math.Abs(math.Dot(gv, bearing)-5) > 1e-3 {
		t.Errorf("along-bearing ground speed %g, expected 5", math.Dot(gv, bearing))
	}
}
