package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmKnownPoints(t *testing.T) {
	// Cape Town CBD to a spot just north of it.
	d := DistanceKm(-33.9249, 18.4241, -33.9180, 18.4231)
	assert.InDelta(t, 0.77, d, 0.05)
}

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(-33.9249, 18.4241, -33.9249, 18.4241))
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := DistanceKm(-33.9249, 18.4241, -26.2041, 28.0473)
	b := DistanceKm(-26.2041, 28.0473, -33.9249, 18.4241)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistanceKmCapeTownToJohannesburg(t *testing.T) {
	// Roughly 1260 km apart.
	d := DistanceKm(-33.9249, 18.4241, -26.2041, 28.0473)
	assert.InDelta(t, 1260, d, 15)
}

func TestSortNearestOrdersByDistance(t *testing.T) {
	type shop struct {
		name string
		lat  float64
		lng  float64
	}
	shops := []shop{
		{"joburg", -26.2041, 28.0473},
		{"cbd", -33.9249, 18.4241},
		{"seapoint", -33.9180, 18.4231},
	}
	origin := Point{Lat: -33.9249, Lng: 18.4241}

	SortNearest(shops, origin, func(s shop) (Point, bool) {
		return Point{Lat: s.lat, Lng: s.lng}, true
	})

	assert.Equal(t, "cbd", shops[0].name)
	assert.Equal(t, "seapoint", shops[1].name)
	assert.Equal(t, "joburg", shops[2].name)
}

func TestSortNearestPutsUnlocatedLast(t *testing.T) {
	type shop struct {
		name    string
		lat     float64
		lng     float64
		located bool
	}
	shops := []shop{
		{name: "nowhere"},
		{name: "cbd", lat: -33.9249, lng: 18.4241, located: true},
	}
	origin := Point{Lat: -33.9249, Lng: 18.4241}

	SortNearest(shops, origin, func(s shop) (Point, bool) {
		return Point{Lat: s.lat, Lng: s.lng}, s.located
	})

	assert.Equal(t, "cbd", shops[0].name)
	assert.Equal(t, "nowhere", shops[1].name)
}
