// guidance/paths.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"github.com/mmp/flightpath/math"
)

// Navigation entry points. Each converts its path description into the
// law's canonical inputs (unit path tangent, signed track error, path
// curvature), runs the evaluation, and updates the roll setpoint. Call
// exactly one per control tick.

// NavigateWaypoints tracks the line segment from waypoint a to waypoint b.
// If the two waypoints coincide, or the vehicle is not yet past a, it
// flies direct to a instead.
func (c *Controller) NavigateWaypoints(a, b math.Point2LL, pos math.Point2LL,
	groundVel, windVel [2]float32) {
	c.pathTypeLoiter = false

	vectorAB := math.PlanarDisplacement(a, b)
	vectorAVehicle := math.PlanarDisplacement(a, pos)

	if math.Length2f(vectorAB) < epsilon || math.Dot(vectorAB, vectorAVehicle) < 0 {
		// The waypoints are on top of each other, or the vehicle is in
		// front of a; either way, fly direct to a.
		c.unitPathTangent = math.Scale2f(math.Normalize2f(vectorAVehicle), -1)
		c.signedTrackError = 0
	} else {
		c.unitPathTangent = math.Normalize2f(vectorAB)
		c.signedTrackError = math.Cross2f(c.unitPathTangent, vectorAVehicle)
	}
	GuidanceLog(LogPath, "segment tangent=(%.3f,%.3f) track_err=%.2f",
		c.unitPathTangent[0], c.unitPathTangent[1], c.signedTrackError)

	c.evaluate(groundVel, windVel, c.unitPathTangent, c.signedTrackError, 0)
	c.updateRollSetpoint()
}

// NavigateLoiter orbits the given center at the given radius;
// direction is +1 for clockwise, -1 for counterclockwise.
func (c *Controller) NavigateLoiter(center math.Point2LL, pos math.Point2LL,
	radius float32, direction int8, groundVel, windVel [2]float32) {
	c.pathTypeLoiter = true

	radius = max(radius, minRadius)

	vectorCenterToVehicle := math.PlanarDisplacement(center, pos)
	distToCenter := math.Length2f(vectorCenterToVehicle)

	// Direction from the center to the closest point on the circle.
	var unitCenterToClosest [2]float32

	if distToCenter < 0.1 {
		// The radial direction is undefined at the center; pick something
		// reasonable until the vehicle exits this region.
		if math.Length2f(groundVel) < 0.1 {
			// Not moving either; arbitrarily use the top of the circle.
			unitCenterToClosest = [2]float32{1, 0}
		} else {
			unitCenterToClosest = math.Normalize2f(groundVel)
		}
	} else {
		unitCenterToClosest = math.Normalize2f(vectorCenterToVehicle)
	}

	c.unitPathTangent = math.Scale2f(math.Perp2f(unitCenterToClosest), float32(direction))

	// Positive track error in the direction of the path normal.
	c.signedTrackError = -float32(direction) * (distToCenter - radius)

	pathCurvature := float32(direction) / radius
	GuidanceLog(LogPath, "loiter dist=%.1f radius=%.1f track_err=%.2f",
		distToCenter, radius, c.signedTrackError)

	c.evaluate(groundVel, windVel, c.unitPathTangent, c.signedTrackError, pathCurvature)
	c.updateRollSetpoint()
}

// NavigateHeading regulates the air-relative heading; wind drift and
// inertial position are deliberately ignored.
func (c *Controller) NavigateHeading(heading float32, groundVel, windVel [2]float32) {
	c.pathTypeLoiter = false

	airVel := math.Sub2f(groundVel, windVel)
	sc := math.SinCos(heading)
	c.unitPathTangent = [2]float32{sc[1], sc[0]}
	c.signedTrackError = 0

	c.evaluate(airVel, [2]float32{}, c.unitPathTangent, c.signedTrackError, 0)
	c.updateRollSetpoint()
}

// NavigateBearing regulates the ground-track direction to the given
// bearing, with full wind compensation.
func (c *Controller) NavigateBearing(bearing float32, groundVel, windVel [2]float32) {
	c.pathTypeLoiter = false

	sc := math.SinCos(bearing)
	c.unitPathTangent = [2]float32{sc[1], sc[0]}
	c.signedTrackError = 0

	c.evaluate(groundVel, windVel, c.unitPathTangent, c.signedTrackError, 0)
	c.updateRollSetpoint()
}

// NavigateLevelFlight commands wings level on the given heading, bypassing
// the evaluation entirely; use when no lateral correction is wanted.
func (c *Controller) NavigateLevelFlight(heading float32) {
	c.pathTypeLoiter = false

	c.airspeedRef = c.AirspeedNom
	c.lateralAccel = 0
	c.feas = 1
	sc := math.SinCos(heading)
	c.bearingVec = [2]float32{sc[1], sc[0]}
	c.unitPathTangent = c.bearingVec
	c.signedTrackError = 0

	c.updateRollSetpoint()
}
