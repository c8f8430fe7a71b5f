package matching

import (
	"context"
	"sort"

	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/geo"
	"github.com/legwalet/le-barber/internal/models"
)

// DefaultRadiusKm bounds discovery when the caller gives no radius. It
// matches the default client preference.
const DefaultRadiusKm = 10.0

// BarberMatch pairs a profile with its distance from the search origin.
// DistanceKm is negative when either side lacks coordinates.
type BarberMatch struct {
	models.BarberProfile
	DistanceKm float64 `json:"distanceKm"`
}

type RentalMatch struct {
	models.Rental
	DistanceKm float64 `json:"distanceKm"`
}

type Discover struct {
	repo domain.Repository
}

func NewDiscover(repo domain.Repository) *Discover {
	return &Discover{repo: repo}
}

// BarbersNear lists barbers around the origin, nearest first. Without an
// origin every barber qualifies and the list falls back to rating order.
func (uc *Discover) BarbersNear(
	ctx context.Context,
	origin *geo.Point,
	radiusKm float64,
) ([]BarberMatch, error) {

	barbers, err := uc.repo.ListBarbers(ctx)
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	matches := make([]BarberMatch, 0, len(barbers))
	for _, b := range barbers {
		match := BarberMatch{BarberProfile: b, DistanceKm: -1}
		if origin != nil {
			lat, lng, ok := b.Location()
			if !ok {
				continue
			}
			d := geo.Between(*origin, geo.Point{Lat: lat, Lng: lng})
			if d > radiusKm {
				continue
			}
			match.DistanceKm = d
		}
		matches = append(matches, match)
	}

	if origin != nil {
		geo.SortNearest(matches, *origin, func(m BarberMatch) (geo.Point, bool) {
			lat, lng, ok := m.Location()
			return geo.Point{Lat: lat, Lng: lng}, ok
		})
	} else {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Rating > matches[j].Rating
		})
	}
	return matches, nil
}

// RentalsNear lists available rentals around the origin, nearest first.
func (uc *Discover) RentalsNear(
	ctx context.Context,
	origin *geo.Point,
	radiusKm float64,
) ([]RentalMatch, error) {

	rentals, err := uc.repo.ListRentalsByStatus(ctx, models.RentalAvailable)
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	matches := make([]RentalMatch, 0, len(rentals))
	for _, r := range rentals {
		match := RentalMatch{Rental: r, DistanceKm: -1}
		if origin != nil {
			lat, lng, ok := r.Location()
			if !ok {
				continue
			}
			d := geo.Between(*origin, geo.Point{Lat: lat, Lng: lng})
			if d > radiusKm {
				continue
			}
			match.DistanceKm = d
		}
		matches = append(matches, match)
	}

	if origin != nil {
		geo.SortNearest(matches, *origin, func(m RentalMatch) (geo.Point, bool) {
			lat, lng, ok := m.Location()
			return geo.Point{Lat: lat, Lng: lng}, ok
		})
	}
	return matches, nil
}
