// Package motion computes great-circle distances and per-trajectory movement statistics.
package motion

import (
	"time"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// EarthMeanRadiusKm is the mean earth radius, en.wikipedia.org/wiki/Earth_radius#Mean_radius.
const EarthMeanRadiusKm = 6371.009

// GreatCircleKm is the haversine distance between two [lng, lat] degree points
// on a sphere of EarthMeanRadiusKm.
// It is symmetric and exactly zero for identical points.
func GreatCircleKm(a, b orb.Point) float64 {
	// Fixed argument order keeps the float products identical both ways.
	if b.Lat() < a.Lat() || (b.Lat() == a.Lat() && b.Lon() < a.Lon()) {
		a, b = b, a
	}
	// s2.LatLng.Distance is the haversine central angle.
	angle := s2.LatLngFromDegrees(a.Lat(), a.Lon()).Distance(s2.LatLngFromDegrees(b.Lat(), b.Lon()))
	return angle.Radians() * EarthMeanRadiusKm
}

// PathKm sums GreatCircleKm over consecutive points. It is zero for fewer than two points.
func PathKm(ls orb.LineString) (km float64) {
	for i := 1; i < len(ls); i++ {
		km += GreatCircleKm(ls[i-1], ls[i])
	}
	return
}

// ZeroElapsedSpeedKmh is the average speed of a trajectory whose first and
// last records share a timestamp, whatever distance it covers.
const ZeroElapsedSpeedKmh = 0.0

// AverageSpeedKmh is distance over elapsed hours,
// or ZeroElapsedSpeedKmh when no time elapsed.
func AverageSpeedKmh(distanceKm float64, elapsed time.Duration) float64 {
	if elapsed == 0 {
		return ZeroElapsedSpeedKmh
	}
	return distanceKm / elapsed.Hours()
}
