// math/latlong.go
// Copyright(c) 2025 flightpath contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

// EarthRadiusMeters is the mean Earth radius used for local planar projection.
const EarthRadiusMeters = 6371000

// Point2LL represents a 2D point on the surface of the Earth in latitude-
// longitude coordinates. It is stored as [longitude, latitude] so that
// the x coordinate is the longitude when it is treated as a regular 2D
// point.
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

// PlanarDisplacement returns the displacement vector in meters from origin
// to target on a local tangent plane anchored at origin, x pointing north
// and y east. It uses the small-angle equirectangular approximation, which
// is plenty accurate over the distances involved in path following; the
// intermediate math is done in double precision since differences of
// nearby latitudes lose most of their float32 mantissa.
func PlanarDisplacement(origin, target Point2LL) [2]float32 {
	dlat := float64(Radians(target.Latitude() - origin.Latitude()))
	dlon := float64(Radians(target.Longitude() - origin.Longitude()))
	coslat := gomath.Cos(float64(Radians(origin.Latitude())))

	return [2]float32{
		float32(dlat * EarthRadiusMeters),
		float32(dlon * coslat * EarthRadiusMeters),
	}
}

// Offset2LL displaces p by the given [north, east] meters on the local
// tangent plane, inverting PlanarDisplacement.
func Offset2LL(p Point2LL, disp [2]float32) Point2LL {
	coslat := gomath.Cos(float64(Radians(p.Latitude())))
	dlat := float64(disp[0]) / EarthRadiusMeters
	dlon := float64(disp[1]) / (coslat * EarthRadiusMeters)

	return Point2LL{
		p[0] + Degrees(float32(dlon)),
		p[1] + Degrees(float32(dlat)),
	}
}
