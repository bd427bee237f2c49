package geo

import (
	"math"

	"github.com/jeanmnorhen/precoreal-backend/pkg/types"
)

// earthRadiusMeters is the mean radius of the WGS-84 sphere approximation.
const earthRadiusMeters = 6371008.8

// Distance returns the great-circle distance in meters between two WGS-84
// points using the haversine formula. The spherical model deviates from the
// ellipsoid by well under the tolerance a 150 m geofence needs.
func Distance(a, b types.GeographyPoint) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Within reports whether the two points are at most radiusMeters apart.
// The boundary is inclusive: a distance exactly equal to the radius counts
// as inside.
func Within(a, b types.GeographyPoint, radiusMeters float64) bool {
	return Distance(a, b) <= radiusMeters
}
