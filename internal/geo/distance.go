package geo

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the Haversine great-circle distance in kilometers.
// Total for any finite input; NaN input propagates to the result.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Between is DistanceKm over Points.
func Between(a, b Point) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// SortNearest orders items ascending by distance from origin. locate must
// return the item's coordinate; items without one sort last.
func SortNearest[T any](items []T, origin Point, locate func(T) (Point, bool)) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, oki := locate(items[i])
		pj, okj := locate(items[j])
		if !oki || !okj {
			return oki
		}
		return Between(origin, pi) < Between(origin, pj)
	})
}
