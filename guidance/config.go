// guidance/config.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package guidance

import "github.com/mmp/flightpath/math"

// Config holds the runtime-tunable parameters of the guidance law. All
// angles are radians, speeds m/s, times seconds. Values are clamped at
// their use sites rather than validated here; configuration validation is
// the surrounding system's job.
type Config struct {
	// Period is the nominal period of the track-error dynamics.
	Period float32 `json:"period"`
	// Damping is the damping ratio of the track-error dynamics.
	Damping float32 `json:"damping"`
	// RollTimeConst is the time constant of the roll response of the
	// underlying attitude loop; it drives the period stability bounds.
	RollTimeConst float32 `json:"roll_time_const"`

	AirspeedNom float32 `json:"airspeed_nom"`
	AirspeedMax float32 `json:"airspeed_max"`

	// EnablePeriodLB lower-bounds the adapted period for stability with
	// respect to the roll time constant and flight condition.
	EnablePeriodLB bool `json:"en_period_lb"`
	// EnablePeriodUB additionally upper-bounds the period for track-keeping
	// stability on curved paths in wind. Only honored when EnablePeriodLB is
	// set; decrementing the period without the stability lower bound is
	// unsafe. If the roll time constant is not accurately known, reducing
	// the period can destabilize the system.
	EnablePeriodUB bool `json:"en_period_ub"`
	// RampInAdaptedPeriod blends from the nominal to the upper-bounded
	// period with track proximity instead of switching immediately.
	RampInAdaptedPeriod bool `json:"ramp_in_adapted_period"`

	// EnableTrackKeeping demands ground speed to hold the track in excess
	// wind, up to TrackKeepingGSMax.
	EnableTrackKeeping bool    `json:"en_track_keeping"`
	TrackKeepingGSMax  float32 `json:"min_gsp_track_keeping_max"`
	// InvNTEFraction is the inverse of the normalized-track-error fraction
	// at which the track-keeping demand saturates.
	InvNTEFraction float32 `json:"inv_nte_fraction"`

	// EnableMinGroundSpeed enforces MinGroundSpeed along the bearing.
	EnableMinGroundSpeed bool    `json:"en_min_ground_speed"`
	MinGroundSpeed       float32 `json:"min_gsp_cmd"`

	// EnableWindExcessRegulation allows airspeed reference increments above
	// nominal (up to AirspeedMax) when wind would otherwise defeat the
	// commanded bearing. Without it the law still mitigates infeasible
	// bearings, but only at nominal airspeed.
	EnableWindExcessRegulation bool `json:"en_wind_excess_regulation"`
	// WindRatioBuffer is the width of the feasibility transition band in
	// wind ratio below the infeasibility barrier.
	WindRatioBuffer float32 `json:"wind_ratio_buffer"`

	RollLimit float32 `json:"roll_lim_rad"`
	// RollSlewRate limits the roll setpoint rate (rad/s); zero disables
	// slew limiting.
	RollSlewRate float32 `json:"roll_slew_rate"`
}

func DefaultConfig() Config {
	return Config{
		Period:                     10,
		Damping:                    0.7071,
		RollTimeConst:              0.5,
		AirspeedNom:                15,
		AirspeedMax:                25,
		EnablePeriodLB:             true,
		EnablePeriodUB:             false,
		RampInAdaptedPeriod:        true,
		EnableTrackKeeping:         false,
		TrackKeepingGSMax:          5,
		InvNTEFraction:             2,
		EnableMinGroundSpeed:       false,
		MinGroundSpeed:             5,
		EnableWindExcessRegulation: true,
		WindRatioBuffer:            0.1,
		RollLimit:                  math.Radians(45),
		RollSlewRate:               0,
	}
}
