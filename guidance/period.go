// guidance/period.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"github.com/mmp/flightpath/math"
)

// The gain scheduler: adapts the guidance period to the flight condition
// (airspeed, wind, path curvature) subject to stability bounds, then
// derives the proportional gain and time constant from it.

// adaptPeriod returns the working period for this tick. Starting from the
// configured nominal period, it is raised to the stability lower bound
// when lower bounding is enabled, and optionally pulled down toward the
// track-keeping upper bound when that is enabled as well.
func (c *Controller) adaptPeriod(groundSpeed, airspeed, windRatio, trackError,
	pathCurvature, feasOnTrack float32) float32 {
	period := c.Period
	airTurnRate := math.Abs(pathCurvature * airspeed)
	windFac := windFactor(windRatio)

	if c.EnablePeriodLB {
		periodLB := c.periodLB(airTurnRate, windFac, feasOnTrack)
		period = max(periodLB*periodSafetyFactor, period)

		// Upper bounding is only allowed when lower bounding is enabled;
		// decrementing the period without a stability check is dangerous.
		periodUB := c.periodUB(airTurnRate, windFac, feasOnTrack)

		if c.EnablePeriodUB && math.IsFinite(periodUB) && period > periodUB {
			// Prefer the lower bound if the two conflict.
			periodAdapted := max(periodLB*periodSafetyFactor, periodUB)

			if c.RampInAdaptedPeriod {
				// Ramp the adapted period in as the vehicle nears the
				// track. The track proximity used here is recomputed from
				// the lower-bounded period rather than the final adapted
				// one: only a numerical solution could find the proximity
				// and the adapted gains simultaneously, so this
				// approximation is the documented behavior.
				tc := timeConst(period, c.Damping)
				teb := trackErrorBound(groundSpeed, tc)
				nte := normalizedTrackError(trackError, teb)
				prox := trackProximity(lookAheadAngle(nte))

				period = periodAdapted*prox + (1-prox)*period
			} else {
				period = periodAdapted
			}
			GuidanceLog(LogPeriod, "period upper bounded: adapted=%.2f ub=%.2f", period, periodUB)
		}
	}

	return period
}

// windFactor maps the wind ratio to a [0,2] factor that saturates as the
// wind speed approaches the airspeed.
func windFactor(windRatio float32) float32 {
	return 2 * (1 - math.Sqrt(1-min(1, windRatio)))
}

// periodLB is a conservative stability lower bound on the period, a
// constant worst case across wind ratio, airspeed, and curvature.
func (c *Controller) periodLB(airTurnRate, windFactor, feasOnTrack float32) float32 {
	// The bound for zero curvature and no wind, or damping ratio < 0.5.
	periodLB := math.Pi * c.RollTimeConst / c.Damping

	if airTurnRate*windFactor < epsilon || c.Damping < 0.5 {
		return periodLB
	}

	// The bound for tracking a curved path in wind with damping > 0.5;
	// blend toward the constant bound as the on-track bearing becomes
	// less feasible.
	periodWindyCurvedDamped := 4 * math.Pi * c.RollTimeConst * c.Damping
	return periodWindyCurvedDamped*feasOnTrack + (1-feasOnTrack)*periodLB
}

// periodUB is the track-keeping stability upper bound on the period, or
// +Inf when the turn rate or wind factor is negligible.
func (c *Controller) periodUB(airTurnRate, windFactor, feasOnTrack float32) float32 {
	if airTurnRate*windFactor > epsilon {
		// The on-track feasibility factor zeroes the curvature influence
		// when the track cannot be flown anyway.
		return 4 * math.Pi * c.Damping / (airTurnRate * windFactor * feasOnTrack)
	}

	return math.Infinity
}

func pGain(period, damping float32) float32 {
	return 4 * math.Pi * damping / period
}

func timeConst(period, damping float32) float32 {
	return period * damping
}

// trackErrorBound is the dynamic bound used to normalize the track error.
func trackErrorBound(groundSpeed, timeConst float32) float32 {
	if groundSpeed > 1 {
		return groundSpeed * timeConst
	}

	// Quadratic blend below 1 m/s ground speed so the normalization does
	// not collapse to zero; both branches agree at groundSpeed == 1.
	return 0.5 * timeConst * (groundSpeed*groundSpeed + 1)
}

func normalizedTrackError(trackError, trackErrorBound float32) float32 {
	return math.Clamp(trackError/trackErrorBound, 0, 1)
}

// lookAheadAngle shapes the normalized track error into the angle between
// the track-error direction and the desired bearing: pi/2 on the track
// (bearing along the path tangent), 0 at or beyond the track error bound
// (bearing straight at the track).
func lookAheadAngle(normalizedTrackError float32) float32 {
	return math.Pi * 0.5 * math.Sqr(normalizedTrackError-1)
}

// trackProximity is a [0,1] weight that ramps curvature feedforward and
// period transitions in near the track.
func trackProximity(lookAheadAng float32) float32 {
	return math.Sqr(math.Sin(lookAheadAng))
}

// bearingVec returns the unit desired ground-track direction, rotated from
// the track-error direction toward the path tangent by the look ahead
// angle.
func bearingVec(unitPathTangent [2]float32, lookAheadAng, signedTrackError float32) [2]float32 {
	sc := math.SinCos(lookAheadAng)

	unitPathNormal := math.Perp2f(unitPathTangent)
	sign := float32(1)
	if signedTrackError < 0 {
		sign = -1
	}
	unitTrackError := math.Scale2f(unitPathNormal, -sign)

	return math.Add2f(math.Scale2f(unitTrackError, sc[1]), math.Scale2f(unitPathTangent, sc[0]))
}
