// guidance/lateral.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"github.com/mmp/flightpath/math"
)

// lateralAccelFeedback is the lateral acceleration demand from the heading
// error between the current and reference air velocity.
func (c *Controller) lateralAccelFeedback(airVel, airVelRef [2]float32, airspeed float32) float32 {
	dotAirVelErr := math.Dot(airVel, airVelRef)
	crossAirVelErr := math.Cross2f(airVel, airVelRef)

	if dotAirVelErr < 0 {
		// Heading error beyond 90 degrees: hold the maximum acceleration
		// command in the direction of the error.
		if crossAirVelErr < 0 {
			return -c.pGain * airspeed * airspeed
		}
		return c.pGain * airspeed * airspeed
	}

	// The airspeed/airspeedRef ratio scales an incremented airspeed
	// reference back to a command at the vehicle's actual airspeed.
	return c.pGain * crossAirVelErr * airspeed / c.airspeedRef
}

// lateralAccelFeedforward is the curvature feedforward term, the
// acceleration needed to stay on the curved track assuming zero heading
// error. All quantities are evaluated at the closest point on the path,
// and the result is ramped in with track proximity and zeroed when the
// bearing is infeasible, so an unreachable or distant path does not induce
// lateral demand.
func (c *Controller) lateralAccelFeedforward(unitPathTangent, groundVel [2]float32,
	windDotUpt, windCrossUpt, airspeed, signedTrackError, pathCurvature,
	trackProximity, feasCombined float32) float32 {
	// Instantaneous curvature at the vehicle's offset from the path, as on
	// concentric circles emanating inward/outward from it.
	pathFrameCurvature := pathCurvature / max(1-pathCurvature*signedTrackError,
		pathCurvature*minRadius)

	// Tangent ground speed limited to the forward-moving direction.
	tangentGroundSpeed := max(math.Dot(groundVel, unitPathTangent), 0)

	pathFrameRate := pathFrameCurvature * tangentGroundSpeed

	// Ratio of the ground and air velocity projections on the track.
	speedRatio := 1 + windDotUpt/max(projectAirspeedOnBearing(airspeed, windCrossUpt), epsilon)

	// airspeed * speedRatio rather than groundSpeed^2: the acceleration is
	// commanded in the air mass relative frame.
	return airspeed * trackProximity * feasCombined * speedRatio * pathFrameRate
}

// updateRollSetpoint converts the lateral acceleration demand into the
// roll setpoint: atan(a/g), clamped to the roll limit, slew rate limited
// against the previous setpoint when dt and the slew rate are positive. A
// non-finite candidate is discarded and the previous setpoint kept.
func (c *Controller) updateRollSetpoint() {
	rollNew := math.Atan(c.lateralAccel / gravity)
	rollNew = math.Clamp(rollNew, -c.RollLimit, c.RollLimit)

	if c.dt > 0 && c.RollSlewRate > 0 {
		rollNew = math.Clamp(rollNew, c.rollSetpoint-c.RollSlewRate*c.dt,
			c.rollSetpoint+c.RollSlewRate*c.dt)
	}

	if math.IsFinite(rollNew) {
		GuidanceLog(LogRoll, "accel=%.3f roll=%.4f", c.lateralAccel, rollNew)
		c.rollSetpoint = rollNew
	}
}
