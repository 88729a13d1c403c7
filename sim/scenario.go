// sim/scenario.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
	"fmt"

	"github.com/brunoga/deep"

	"github.com/mmp/flightpath/guidance"
	"github.com/mmp/flightpath/log"
	"github.com/mmp/flightpath/math"
	"github.com/mmp/flightpath/telemetry"
)

// LoiterSpec describes an orbit to hold.
type LoiterSpec struct {
	Center    math.Point2LL
	Radius    float32 // meters
	Direction int8    // +1 clockwise, -1 counter-clockwise
}

// Scenario bundles everything needed for a closed-loop run: the aircraft,
// the wind, the guidance tuning, and either a waypoint sequence or a
// loiter to fly.
type Scenario struct {
	Name     string
	Aircraft Aircraft
	Wind     Wind
	Guidance guidance.Config

	Waypoints      []math.Point2LL
	WaypointRadius float32 // meters, acceptance radius at each waypoint
	Loiter         *LoiterSpec

	Dt    float32
	Steps int
}

// DefaultScenario returns a Scenario with nominal guidance tuning and the
// aircraft at start, heading north at the nominal airspeed. The caller
// fills in the path.
func DefaultScenario(name string, start math.Point2LL) *Scenario {
	config := guidance.DefaultConfig()
	return &Scenario{
		Name: name,
		Aircraft: Aircraft{
			Position:          start,
			Heading:           0,
			Airspeed:          config.AirspeedNom,
			AirspeedTimeConst: 2,
		},
		Guidance:       config,
		WaypointRadius: 50,
		Dt:             0.05,
		Steps:          4000,
	}
}

// Clone returns an independent copy of the Scenario, gust state and RNG
// included, so that a run can be replayed or perturbed without disturbing
// the original.
func (s *Scenario) Clone() *Scenario {
	return deep.MustCopy(s)
}

var ErrNoPath = errors.New("scenario: no waypoints or loiter defined")

// RunStats summarizes a completed run.
type RunStats struct {
	Steps            int
	WaypointsReached int
	MaxAbsTrackError float32
	FinalPosition    math.Point2LL
}

// Run flies the scenario to completion, stepping guidance and dynamics in
// lockstep. Each tick is appended to rec if it is non-nil.
func (s *Scenario) Run(rec *telemetry.Recorder, lg *log.Logger) (RunStats, error) {
	if len(s.Waypoints) < 2 && s.Loiter == nil {
		return RunStats{}, ErrNoPath
	}
	if s.Dt <= 0 {
		return RunStats{}, fmt.Errorf("scenario: invalid dt %v", s.Dt)
	}

	ctrl := guidance.NewController(s.Guidance)
	ctrl.SetDt(s.Dt)

	lg.Infof("run %q: %d steps of %.2fs, wind %.1f m/s from %.0f",
		s.Name, s.Steps, s.Dt, s.Wind.Speed, s.Wind.Direction)

	var stats RunStats
	leg := 0
	for tick := 0; tick < s.Steps; tick++ {
		s.Wind.Step(s.Dt)
		windVel := s.Wind.Velocity()
		groundVel := s.Aircraft.GroundVelocity(windVel)

		if s.Loiter != nil {
			ctrl.NavigateLoiter(s.Loiter.Center, s.Aircraft.Position,
				s.Loiter.Radius, s.Loiter.Direction, groundVel, windVel)
		} else {
			ctrl.NavigateWaypoints(s.Waypoints[leg], s.Waypoints[leg+1],
				s.Aircraft.Position, groundVel, windVel)

			toNext := math.PlanarDisplacement(s.Aircraft.Position, s.Waypoints[leg+1])
			if math.Length2f(toNext) < ctrl.SwitchDistance(s.WaypointRadius) {
				stats.WaypointsReached++
				if leg+2 < len(s.Waypoints) {
					leg++
					lg.Debugf("run %q: advancing to leg %d at tick %d", s.Name, leg, tick)
				} else {
					stats.Steps = tick + 1
					break
				}
			}
		}

		status := ctrl.Status()
		if e := math.Abs(status.SignedTrackError); e > stats.MaxAbsTrackError {
			stats.MaxAbsTrackError = e
		}

		s.Aircraft.Step(s.Dt, ctrl.RollSetpoint(), ctrl.AirspeedRef(), windVel)

		if rec != nil {
			if err := rec.Append(telemetry.Record{
				Tick:     tick,
				Time:     float32(tick) * s.Dt,
				Position: s.Aircraft.Position,
				Heading:  s.Aircraft.Heading,
				Airspeed: s.Aircraft.Airspeed,
				Wind:     windVel,
				Guidance: status,
			}); err != nil {
				return stats, fmt.Errorf("telemetry: %w", err)
			}
		}
		stats.Steps = tick + 1
	}

	stats.FinalPosition = s.Aircraft.Position
	lg.Infof("run %q: done after %d steps, max |track error| %.1f m",
		s.Name, stats.Steps, stats.MaxAbsTrackError)

	return stats, nil
}
