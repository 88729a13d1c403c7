// sim/wind.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/mmp/flightpath/math"
	"github.com/mmp/flightpath/rand"
)

// Wind models a steady mean wind plus first-order Gauss-Markov gusts.
// Direction follows the meteorological convention: the bearing the wind
// blows FROM, degrees clockwise from north.
type Wind struct {
	Speed     float32 // m/s
	Direction float32 // degrees, blowing from
	GustSigma float32 // m/s standard deviation per axis, 0 disables gusts
	GustTau   float32 // gust correlation time, seconds

	gust [2]float32
	rng  rand.Rand
}

func MakeWind(speed, directionDeg, gustSigma float32, seed int64) Wind {
	w := Wind{
		Speed:     speed,
		Direction: directionDeg,
		GustSigma: gustSigma,
		GustTau:   10,
		rng:       rand.New(),
	}
	w.rng.Seed(seed)
	return w
}

// Mean returns the steady [north, east] wind velocity in m/s.
func (w *Wind) Mean() [2]float32 {
	// "From 270" blows toward the east.
	to := math.Radians(w.Direction) + math.Pi
	sc := math.SinCos(to)
	return math.Scale2f([2]float32{sc[1], sc[0]}, w.Speed)
}

// Velocity returns the current total [north, east] wind including gusts.
func (w *Wind) Velocity() [2]float32 {
	return math.Add2f(w.Mean(), w.gust)
}

// Step advances the gust state by dt seconds. Each axis is an
// Ornstein-Uhlenbeck process with stationary standard deviation GustSigma.
func (w *Wind) Step(dt float32) {
	if w.GustSigma <= 0 || w.GustTau <= 0 {
		w.gust = [2]float32{}
		return
	}

	alpha := math.Clamp(dt/w.GustTau, 0, 1)
	scale := w.GustSigma * math.Sqrt(alpha*(2-alpha))
	w.gust[0] = (1-alpha)*w.gust[0] + scale*w.rng.NormFloat32()
	w.gust[1] = (1-alpha)*w.gust[1] + scale*w.rng.NormFloat32()
}
