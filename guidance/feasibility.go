// guidance/feasibility.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import (
	"github.com/mmp/flightpath/math"
)

// Bearing feasibility: can the aircraft make good a desired ground-track
// direction given the wind and its airspeed limits? The wind ratio
// (wind speed / airspeed) at which the answer flips depends on the angle
// between the wind and the bearing; directly downwind any ratio works,
// directly upwind anything above 1 is infeasible.

// The feasibility barriers contain a 1/sin(cross wind angle) term;
// below this sine value the barrier is continued linearly with matching
// slope instead, avoiding the singularity at zero cross wind angle.
const (
	sinCrossWindCutoff    = 0.05
	invSinCrossWindCutoff = 1 / sinCrossWindCutoff
	crossWindCutoffSlope  = 1 / (sinCrossWindCutoff * sinCrossWindCutoff)
)

// bearingFeasibility returns the [0,1] feasibility of a bearing: 1 below
// the lower wind-ratio barrier, 0 above the upper barrier, and a squared
// cosine transition in the band between, whose width is set by
// Config.WindRatioBuffer.
func (c *Controller) bearingFeasibility(windCrossBearing, windDotBearing, windSpeed, windRatio float32) float32 {
	var sinCrossWindAng float32 // in [0,1], held at 1 beyond 90 deg

	if windDotBearing <= 0 {
		sinCrossWindAng = 1
	} else {
		sinCrossWindAng = math.Abs(windCrossBearing / windSpeed)
	}

	var windRatioUB, windRatioLB float32

	if sinCrossWindAng < sinCrossWindCutoff {
		// Small angle approximation: linear continuation of the barrier
		// curves with matching slope at the cutoff.
		windRatioUB = invSinCrossWindCutoff + crossWindCutoffSlope*(sinCrossWindCutoff-sinCrossWindAng)

		windRatioLBCutoff := (invSinCrossWindCutoff-2)*c.WindRatioBuffer + 1
		windRatioLB = windRatioLBCutoff + c.WindRatioBuffer*crossWindCutoffSlope*(sinCrossWindCutoff-sinCrossWindAng)
	} else {
		oneDivSin := 1 / sinCrossWindAng
		windRatioUB = oneDivSin
		windRatioLB = (oneDivSin-2)*c.WindRatioBuffer + 1
	}

	feas := float32(1)

	if windRatio > windRatioUB {
		feas = 0
	} else if windRatio > windRatioLB {
		// Smooth transition from fully feasible to fully infeasible.
		feas = math.Cos(math.Pi * 0.5 * math.Clamp((windRatio-windRatioLB)/(windRatioUB-windRatioLB), 0, 1))
		feas *= feas
	}

	return feas
}

// bearingIsFeasible is the boolean form: true iff the given airspeed can
// make good the bearing against the wind.
func bearingIsFeasible(windCrossBearing, windDotBearing, airspeed, windSpeed float32) bool {
	return math.Abs(windCrossBearing) < airspeed &&
		(windDotBearing > 0 || windSpeed < airspeed)
}
