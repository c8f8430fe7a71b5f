package matching

import (
	"context"
	"time"

	"github.com/legwalet/le-barber/internal/models"
)

// Repository is everything the request/booking lifecycle needs from the
// entity store.
type Repository interface {
	// -------- Booking requests --------
	GetRequest(
		ctx context.Context,
		id string,
	) (*models.BookingRequest, error)

	CreateRequest(
		ctx context.Context,
		req *models.BookingRequest,
	) error

	// ResolveRequest persists a request leaving pending. The write is
	// conditional on the row still being pending, so within one store the
	// first resolution wins and the loser sees already_resolved.
	ResolveRequest(
		ctx context.Context,
		req *models.BookingRequest,
	) error

	ListAcceptedRequestsWithoutBooking(
		ctx context.Context,
	) ([]models.BookingRequest, error)

	ExpireRequestsBefore(
		ctx context.Context,
		cutoff time.Time,
	) (int64, error)

	// -------- Bookings --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForBarber(
		ctx context.Context,
		bookingID string,
		barberID string,
	) (*models.Booking, error)

	SaveBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	HasBookingForRequest(
		ctx context.Context,
		requestID string,
	) (bool, error)

	// -------- Barbers / rentals (discovery) --------
	GetBarber(
		ctx context.Context,
		id string,
	) (*models.BarberProfile, error)

	ListBarbers(
		ctx context.Context,
	) ([]models.BarberProfile, error)

	ListRentalsByStatus(
		ctx context.Context,
		status string,
	) ([]models.Rental, error)

	// -------- Reviews --------
	CreateReview(
		ctx context.Context,
		r *models.Review,
	) error

	ListReviewsForBarber(
		ctx context.Context,
		barberID string,
	) ([]models.Review, error)

	SetBarberRating(
		ctx context.Context,
		barberID string,
		rating float64,
		reviewCount int,
	) error

	// -------- Client presence flag --------
	SetClientOpenRequest(
		ctx context.Context,
		clientID string,
		open bool,
	) error
}
