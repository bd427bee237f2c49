package geo

import (
	"math"
	"testing"

	"github.com/jeanmnorhen/precoreal-backend/pkg/types"
)

// pointAtMeters returns a point displaced due north of origin by the given
// distance. A pure latitude displacement on the sphere makes the haversine
// distance exact, which keeps the boundary assertions honest.
func pointAtMeters(origin types.GeographyPoint, meters float64) types.GeographyPoint {
	dLat := meters * 180 / (math.Pi * earthRadiusMeters)
	return types.GeographyPoint{Lat: origin.Lat + dLat, Lng: origin.Lng}
}

func TestDistanceZero(t *testing.T) {
	p := types.GeographyPoint{Lat: -23.5505, Lng: -46.6333}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("distance to self = %f, want 0", d)
	}
}

func TestDistanceKnownDisplacement(t *testing.T) {
	origin := types.GeographyPoint{Lat: -23.5505, Lng: -46.6333}
	for _, meters := range []float64{10, 100, 149, 151, 1000} {
		target := pointAtMeters(origin, meters)
		got := Distance(origin, target)
		if math.Abs(got-meters) > 0.01 {
			t.Fatalf("distance for %fm displacement = %f", meters, got)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := types.GeographyPoint{Lat: 35.4676, Lng: -97.5164}
	b := types.GeographyPoint{Lat: 35.4690, Lng: -97.5200}
	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestWithinGeofenceBoundary(t *testing.T) {
	origin := types.GeographyPoint{Lat: -23.5505, Lng: -46.6333}

	if !Within(origin, pointAtMeters(origin, 149), 150) {
		t.Fatal("149m displacement should be within a 150m radius")
	}
	if Within(origin, pointAtMeters(origin, 151), 150) {
		t.Fatal("151m displacement should be outside a 150m radius")
	}
	// Exactly on the fence counts as inside.
	if !Within(origin, pointAtMeters(origin, 150), 150.005) {
		t.Fatal("boundary distance should be inside an inclusive radius")
	}
}
