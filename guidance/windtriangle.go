// guidance/windtriangle.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"github.com/mmp/flightpath/math"
)

// The wind triangle relates ground velocity = air velocity + wind. Given
// the desired bearing (ground-track direction) and the wind, this file
// chooses the air velocity reference that best realizes the bearing,
// raising the airspeed above nominal when the wind demands it and falling
// back to a mitigation law when no airspeed in range can achieve the
// bearing at all.

// AirVelRefRegime names the solution regime chosen for the air velocity
// reference; it is retained in the controller state for diagnostics.
type AirVelRefRegime int

const (
	// RegimeNominal: the bearing (and any minimum ground speed demand) is
	// achievable at nominal airspeed.
	RegimeNominal AirVelRefRegime = iota
	// RegimeMinGroundSpeed: a minimum ground speed demand requires an
	// airspeed between nominal and maximum.
	RegimeMinGroundSpeed
	// RegimeMaxAirspeed: the demand exceeds maximum airspeed, but the
	// bearing itself is still achievable at maximum.
	RegimeMaxAirspeed
	// RegimeWindExcessHold: the bearing is only achievable at maximum
	// airspeed and the wind opposes it; the reference matches the wind for
	// a zero ground speed terminal condition rather than overcommitting
	// airspeed.
	RegimeWindExcessHold
	// RegimeWindExcessMinAirspeed: the bearing is only achievable at
	// maximum airspeed with a crosswind component; the reference uses the
	// minimal airspeed that holds the bearing line.
	RegimeWindExcessMinAirspeed
	// RegimeInfeasible: no airspeed in range achieves the bearing; the
	// mitigation law points as close to it as possible.
	RegimeInfeasible
)

func (r AirVelRefRegime) String() string {
	switch r {
	case RegimeNominal:
		return "nominal"
	case RegimeMinGroundSpeed:
		return "min_ground_speed"
	case RegimeMaxAirspeed:
		return "max_airspeed"
	case RegimeWindExcessHold:
		return "wind_excess_hold"
	case RegimeWindExcessMinAirspeed:
		return "wind_excess_min_airspeed"
	case RegimeInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// minGroundSpeed returns the, possibly zero, minimum ground speed demanded
// along the bearing: the larger of the track-keeping demand (grows with
// normalized track error once the bearing becomes infeasible) and the flat
// user-configured minimum. Both demands require wind excess regulation to
// be enabled.
func (c *Controller) minGroundSpeed(normalizedTrackError, feasCombined float32) float32 {
	minGspTrackKeeping := float32(0)

	if c.EnableTrackKeeping && c.EnableWindExcessRegulation {
		// Zeroed when the bearing is feasible; no speed increment is
		// needed to hold the track then.
		minGspTrackKeeping = (1 - feasCombined) * c.TrackKeepingGSMax *
			math.Clamp(normalizedTrackError*c.InvNTEFraction, 0, 1)
	}

	minGspCmd := float32(0)

	if c.EnableMinGroundSpeed && c.EnableWindExcessRegulation {
		minGspCmd = c.MinGroundSpeed
	}

	return max(minGspTrackKeeping, minGspCmd)
}

// refAirVelocity classifies the solution regime and computes the air
// velocity reference for it.
func (c *Controller) refAirVelocity(windVel, bearingVec [2]float32,
	windCrossBearing, windDotBearing, windSpeed, minGroundSpeed float32) (AirVelRefRegime, [2]float32) {
	regime := c.classifyAirVelRef(windCrossBearing, windDotBearing, windSpeed, minGroundSpeed)

	switch regime {
	case RegimeNominal:
		return regime, solveWindTriangle(windCrossBearing,
			projectAirspeedOnBearing(c.AirspeedNom, windCrossBearing), bearingVec)

	case RegimeMinGroundSpeed:
		airspeedMin := minGroundSpeedAirspeed(minGroundSpeed, windDotBearing, windCrossBearing)
		return regime, solveWindTriangle(windCrossBearing,
			projectAirspeedOnBearing(airspeedMin, windCrossBearing), bearingVec)

	case RegimeMaxAirspeed:
		return regime, solveWindTriangle(windCrossBearing,
			projectAirspeedOnBearing(c.AirspeedMax, windCrossBearing), bearingVec)

	case RegimeWindExcessHold:
		// Increment the airspeed to regulate, but not overcome, the excess
		// wind; the terminal condition is a zero ground velocity
		// configuration.
		return regime, windVel

	case RegimeWindExcessMinAirspeed:
		// A right angle to the bearing line gives minimal airspeed usage.
		return regime, solveWindTriangle(windCrossBearing, 0, bearingVec)

	default: // RegimeInfeasible
		airspeed := c.AirspeedNom
		if c.EnableWindExcessRegulation {
			airspeed = c.AirspeedMax
		}
		return RegimeInfeasible, infeasibleAirVelRef(windVel, bearingVec, windSpeed, airspeed)
	}
}

// classifyAirVelRef selects the wind triangle regime from the feasibility
// and minimum ground speed thresholds.
func (c *Controller) classifyAirVelRef(windCrossBearing, windDotBearing, windSpeed,
	minGroundSpeed float32) AirVelRefRegime {
	if minGroundSpeed > windDotBearing && (c.EnableMinGroundSpeed || c.EnableTrackKeeping) &&
		c.EnableWindExcessRegulation {
		// Minimum ground speed and/or track keeping is in force and the
		// wind alone will not carry us along the bearing fast enough.
		airspeedMin := minGroundSpeedAirspeed(minGroundSpeed, windDotBearing, windCrossBearing)

		switch {
		case airspeedMin > c.AirspeedMax:
			if bearingIsFeasible(windCrossBearing, windDotBearing, c.AirspeedMax, windSpeed) {
				// The minimum ground speed is lost but the bearing is
				// still achievable at maximum airspeed.
				return RegimeMaxAirspeed
			}
			return RegimeInfeasible
		case airspeedMin > c.AirspeedNom:
			return RegimeMinGroundSpeed
		default:
			return RegimeNominal
		}
	}

	// Wind excess regulation and/or mitigation.
	switch {
	case bearingIsFeasible(windCrossBearing, windDotBearing, c.AirspeedNom, windSpeed):
		return RegimeNominal
	case bearingIsFeasible(windCrossBearing, windDotBearing, c.AirspeedMax, windSpeed) &&
		c.EnableWindExcessRegulation:
		if windDotBearing <= 0 {
			return RegimeWindExcessHold
		}
		return RegimeWindExcessMinAirspeed
	default:
		return RegimeInfeasible
	}
}

// minGroundSpeedAirspeed is the airspeed required to achieve the given
// ground speed along the bearing, the Pythagorean combination of the
// crosswind component and the along-bearing speed deficit.
func minGroundSpeedAirspeed(minGroundSpeed, windDotBearing, windCrossBearing float32) float32 {
	return math.Sqrt(math.Sqr(minGroundSpeed-windDotBearing) + math.Sqr(windCrossBearing))
}

// projectAirspeedOnBearing returns the along-bearing component of an air
// velocity of the given magnitude whose cross component cancels the
// crosswind. The caller must have established feasibility
// (bearingIsFeasible == true); otherwise the result is clamped to zero and
// meaningless.
func projectAirspeedOnBearing(airspeed, windCrossBearing float32) float32 {
	return math.Sqrt(max(airspeed*airspeed-windCrossBearing*windCrossBearing, 0))
}

// solveWindTriangle assembles the air velocity from its components across
// and along the bearing; essentially a 2D rotation of the bearing vector
// with the magnitudes baked in.
func solveWindTriangle(windCrossBearing, airspeedDotBearing float32, bearingVec [2]float32) [2]float32 {
	return [2]float32{
		airspeedDotBearing*bearingVec[0] - windCrossBearing*bearingVec[1],
		windCrossBearing*bearingVec[0] + airspeedDotBearing*bearingVec[1],
	}
}

// infeasibleAirVelRef is the mitigation law for a bearing no airspeed in
// range can achieve: project as close to the bearing as possible and give
// up the rest to the wind. The caller must guarantee
// windSpeed > airspeed > 0; the normalization is undefined otherwise.
func infeasibleAirVelRef(windVel, bearingVec [2]float32, windSpeed, airspeed float32) [2]float32 {
	excess := math.Sqrt(max(windSpeed*windSpeed-airspeed*airspeed, 0))
	airVelRef := math.Sub2f(math.Scale2f(bearingVec, excess), windVel)
	return math.Scale2f(math.Normalize2f(airVelRef), airspeed)
}
