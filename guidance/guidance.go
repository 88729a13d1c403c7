// guidance/guidance.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package guidance implements a lateral-directional path following law for
// fixed-wing aircraft. Given ground velocity, an estimate of the wind, and
// a path (line segment, loiter circle, heading, bearing, or wings level),
// it produces a commanded roll angle and an airspeed reference that
// converge the vehicle onto the path, including in conditions where the
// wind exceeds the achievable airspeed.
//
// One Navigate* entry point is called per control tick; downstream
// consumers read the roll setpoint and airspeed reference afterward. All
// computation is closed form: no allocation, no errors, no internal
// concurrency. A Controller must not be shared between control loops.
package guidance

import (
	"github.com/mmp/flightpath/math"
)

// Module-local numerical guards; these are not tuning parameters.
const (
	// Below this airspeed the vehicle is either unlaunched or the wind
	// estimator has failed; the law short-circuits rather than divide by
	// tiny airspeeds.
	minAirspeed = 1 // m/s

	// Loiter radii below this are clamped to avoid singular curvature.
	minRadius = 0.5 // m

	// Margin applied on top of the period stability lower bound.
	periodSafetyFactor = 1.5

	// General cutoff for treating near-zero quantities as zero.
	epsilon = 1e-6

	gravity = 9.80665 // m/s^2
)

// Controller is the per-vehicle guidance state: the configuration plus
// everything derived on the last tick, retained for continuity (roll slew
// limiting) and diagnostics. Create one per vehicle and feed it exactly
// one Navigate* call per tick.
type Controller struct {
	Config

	dt float32

	// Derived state from the last evaluation.
	adaptedPeriod     float32
	pGain             float32
	timeConst         float32
	trackErrorBound   float32
	trackProximity    float32
	bearingVec        [2]float32
	feas              float32
	feasOnTrack       float32
	minGroundSpeedRef float32
	airVelRef         [2]float32
	airspeedRef       float32
	lateralAccelFF    float32
	lateralAccel      float32
	regime            AirVelRefRegime
	rollSetpoint      float32
	pathTypeLoiter    bool
	unitPathTangent   [2]float32
	signedTrackError  float32
}

func NewController(config Config) *Controller {
	return &Controller{Config: config}
}

// SetDt supplies the duration since the previous tick, measured by the
// caller. Zero or negative disables roll slew limiting for the next
// update.
func (c *Controller) SetDt(dt float32) {
	c.dt = dt
}

// Outputs consumed by the surrounding control loops.

// RollSetpoint returns the commanded roll angle in radians, within
// [-RollLimit, RollLimit].
func (c *Controller) RollSetpoint() float32 { return c.rollSetpoint }

// AirspeedRef returns the commanded airspeed in m/s; always non-negative.
func (c *Controller) AirspeedRef() float32 { return c.airspeedRef }

// LateralAccel returns the lateral acceleration demand underlying the roll
// setpoint, m/s^2.
func (c *Controller) LateralAccel() float32 { return c.lateralAccel }

// Feasibility returns the [0,1] feasibility of the current bearing given
// the wind: 1 fully achievable, 0 fully infeasible.
func (c *Controller) Feasibility() float32 { return c.feas }

// TrackErrorBound returns the current track error normalization bound in
// meters.
func (c *Controller) TrackErrorBound() float32 { return c.trackErrorBound }

// BearingVec returns the unit desired ground-track direction.
func (c *Controller) BearingVec() [2]float32 { return c.bearingVec }

// AirVelRef returns the reference air velocity vector.
func (c *Controller) AirVelRef() [2]float32 { return c.airVelRef }

// SwitchDistance returns the distance from a waypoint at which the caller
// should sequence to the next path, the smaller of the given waypoint
// radius and the current track error bound.
func (c *Controller) SwitchDistance(wpRadius float32) float32 {
	return min(wpRadius, c.trackErrorBound)
}

// evaluate runs the guidance pipeline for one tick: gain scheduling, track
// error shaping, bearing feasibility, wind triangle solution, and lateral
// acceleration. unitPathTangent, signedTrackError, and pathCurvature are
// the canonical path representation produced by the Navigate* entry
// points.
func (c *Controller) evaluate(groundVel, windVel [2]float32, unitPathTangent [2]float32,
	signedTrackError, pathCurvature float32) {
	groundSpeed := math.Length2f(groundVel)

	airVel := math.Sub2f(groundVel, windVel)
	airspeed := math.Length2f(airVel)

	if airspeed < minAirspeed {
		// Unlaunched or the wind estimate has failed; output a benign
		// reference and wait for sanity.
		c.airspeedRef = c.AirspeedNom
		c.lateralAccel = 0
		c.feas = 0
		GuidanceLog(LogState, "airspeed %.2f below minimum, holding nominal reference", airspeed)
		return
	}

	windSpeed := math.Length2f(windVel)
	windRatio := windSpeed / airspeed

	trackError := math.Abs(signedTrackError)

	windCrossUpt := math.Cross2f(windVel, unitPathTangent)
	windDotUpt := math.Dot(windVel, unitPathTangent)

	// Feasibility of the path tangent itself, evaluated at the closest
	// point on the track.
	c.feasOnTrack = c.bearingFeasibility(windCrossUpt, windDotUpt, windSpeed, windRatio)

	// Adapt the control parameters to the flight condition; must happen
	// before the track error bound is computed since it sets timeConst.
	c.adaptedPeriod = c.adaptPeriod(groundSpeed, airspeed, windRatio, trackError,
		pathCurvature, c.feasOnTrack)
	c.pGain = pGain(c.adaptedPeriod, c.Damping)
	c.timeConst = timeConst(c.adaptedPeriod, c.Damping)

	c.trackErrorBound = trackErrorBound(groundSpeed, c.timeConst)
	normalizedTrackError := normalizedTrackError(trackError, c.trackErrorBound)

	lookAheadAng := lookAheadAngle(normalizedTrackError)

	c.bearingVec = bearingVec(unitPathTangent, lookAheadAng, signedTrackError)
	GuidanceLog(LogBearing, "nte=%.3f lookahead=%.3f bearing=(%.3f,%.3f)",
		normalizedTrackError, lookAheadAng, c.bearingVec[0], c.bearingVec[1])

	windCrossBearing := math.Cross2f(windVel, c.bearingVec)
	windDotBearing := math.Dot(windVel, c.bearingVec)

	c.feas = c.bearingFeasibility(windCrossBearing, windDotBearing, windSpeed, windRatio)
	GuidanceLog(LogFeasibility, "feas=%.3f feas_on_track=%.3f wind_ratio=%.3f",
		c.feas, c.feasOnTrack, windRatio)

	// Both the current bearing and the on-track bearing must be flyable
	// before curvature or track-keeping demands make sense.
	feasCombined := c.feas * c.feasOnTrack

	c.minGroundSpeedRef = c.minGroundSpeed(normalizedTrackError, feasCombined)

	c.regime, c.airVelRef = c.refAirVelocity(windVel, c.bearingVec, windCrossBearing,
		windDotBearing, windSpeed, c.minGroundSpeedRef)
	c.airspeedRef = math.Length2f(c.airVelRef)
	GuidanceLog(LogWindTriangle, "regime=%s airspeed_ref=%.2f min_gsp=%.2f",
		c.regime, c.airspeedRef, c.minGroundSpeedRef)

	c.trackProximity = trackProximity(lookAheadAng)

	c.lateralAccelFF = c.lateralAccelFeedforward(unitPathTangent, groundVel, windDotUpt,
		windCrossUpt, airspeed, signedTrackError, pathCurvature,
		c.trackProximity, feasCombined)

	c.lateralAccel = c.lateralAccelFeedback(airVel, c.airVelRef, airspeed) + c.lateralAccelFF
}

// Status is a flat snapshot of the derived state from the last tick, for
// telemetry and logging.
type Status struct {
	AdaptedPeriod    float32    `json:"adapted_period" msgpack:"period"`
	PGain            float32    `json:"p_gain" msgpack:"pgain"`
	TimeConst        float32    `json:"time_const" msgpack:"tc"`
	TrackErrorBound  float32    `json:"track_error_bound" msgpack:"teb"`
	TrackProximity   float32    `json:"track_proximity" msgpack:"prox"`
	BearingVec       [2]float32 `json:"bearing_vec" msgpack:"bearing"`
	Feas             float32    `json:"feas" msgpack:"feas"`
	FeasOnTrack      float32    `json:"feas_on_track" msgpack:"feas_ot"`
	MinGroundSpeed   float32    `json:"min_ground_speed" msgpack:"min_gsp"`
	AirVelRef        [2]float32 `json:"air_vel_ref" msgpack:"air_vel_ref"`
	AirspeedRef      float32    `json:"airspeed_ref" msgpack:"airspeed_ref"`
	LateralAccelFF   float32    `json:"lateral_accel_ff" msgpack:"accel_ff"`
	LateralAccel     float32    `json:"lateral_accel" msgpack:"accel"`
	Regime           string     `json:"regime" msgpack:"regime"`
	RollSetpoint     float32    `json:"roll_setpoint" msgpack:"roll"`
	PathTypeLoiter   bool       `json:"path_type_loiter" msgpack:"loiter"`
	UnitPathTangent  [2]float32 `json:"unit_path_tangent" msgpack:"tangent"`
	SignedTrackError float32    `json:"signed_track_error" msgpack:"track_err"`
}

func (c *Controller) Status() Status {
	return Status{
		AdaptedPeriod:    c.adaptedPeriod,
		PGain:            c.pGain,
		TimeConst:        c.timeConst,
		TrackErrorBound:  c.trackErrorBound,
		TrackProximity:   c.trackProximity,
		BearingVec:       c.bearingVec,
		Feas:             c.feas,
		FeasOnTrack:      c.feasOnTrack,
		MinGroundSpeed:   c.minGroundSpeedRef,
		AirVelRef:        c.airVelRef,
		AirspeedRef:      c.airspeedRef,
		LateralAccelFF:   c.lateralAccelFF,
		LateralAccel:     c.lateralAccel,
		Regime:           c.regime.String(),
		RollSetpoint:     c.rollSetpoint,
		PathTypeLoiter:   c.pathTypeLoiter,
		UnitPathTangent:  c.unitPathTangent,
		SignedTrackError: c.signedTrackError,
	}
}
