// sim/aircraft.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/mmp/flightpath/math"
)

// Aircraft is a point-mass fixed-wing model flown with coordinated turns.
// Heading is radians from north, positive clockwise; roll is radians,
// positive right wing down.
type Aircraft struct {
	Position math.Point2LL
	Heading  float32
	Airspeed float32
	Roll     float32

	// AirspeedTimeConst is the first-order lag for tracking airspeed
	// setpoints, seconds.
	AirspeedTimeConst float32
}

const gravity = 9.80665

// AirVelocity returns the [north, east] air-relative velocity in m/s.
func (ac *Aircraft) AirVelocity() [2]float32 {
	sc := math.SinCos(ac.Heading)
	return math.Scale2f([2]float32{sc[1], sc[0]}, ac.Airspeed)
}

// GroundVelocity returns the [north, east] inertial velocity in m/s.
func (ac *Aircraft) GroundVelocity(wind [2]float32) [2]float32 {
	return math.Add2f(ac.AirVelocity(), wind)
}

// Step advances the aircraft by dt seconds. The roll setpoint is tracked
// instantaneously (the guidance side already rate-limits it), the airspeed
// setpoint through a first-order lag, and the turn rate follows from the
// coordinated-turn relation.
func (ac *Aircraft) Step(dt, rollSetpoint, airspeedSetpoint float32, wind [2]float32) {
	ac.Roll = rollSetpoint

	if ac.AirspeedTimeConst > 0 {
		alpha := math.Clamp(dt/ac.AirspeedTimeConst, 0, 1)
		ac.Airspeed = math.Lerp(alpha, ac.Airspeed, airspeedSetpoint)
	} else {
		ac.Airspeed = airspeedSetpoint
	}

	if ac.Airspeed > 0 {
		turnRate := gravity * math.Tan(ac.Roll) / ac.Airspeed
		ac.Heading += turnRate * dt
		ac.Heading = math.Mod(ac.Heading, math.TwoPi)
	}

	vel := ac.GroundVelocity(wind)
	ac.Position = math.Offset2LL(ac.Position, math.Scale2f(vel, dt))
}
