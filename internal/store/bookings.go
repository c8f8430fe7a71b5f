package store

import (
	"context"

	bookingdomain "github.com/legwalet/le-barber/internal/domain/booking"
	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

// CreateBooking persists an appointment. Duplicate submissions create
// duplicate rows; the store does not merge or deduplicate.
func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ClientID == "" || booking.BarberID == "" || booking.Service == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if booking.Price < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if booking.Status == "" {
		booking.Status = "pending"
	}
	if !bookingdomain.IsValid(bookingdomain.Status(booking.Status)) {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Store) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (s *Store) GetBookingsByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC, time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) GetBookingsByBarber(ctx context.Context, barberID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("date ASC, time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) GetBookingsByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingByRequestID finds the booking produced by accepting a request.
func (s *Store) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) GetBookingByRequestID(ctx context.Context, requestID string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&booking).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

// BookingPatch merges non-nil fields. Status is deliberately absent: status
// changes go through the lifecycle use case, which enforces the transition
// table.
type BookingPatch struct {
	Date        *string
	Time        *string
	DurationMin *int
	Price       *float64
	Notes       *string
}

func (s *Store) UpdateBooking(ctx context.Context, id string, patch BookingPatch) (*models.Booking, error) {
	booking, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		booking.Date = *patch.Date
	}
	if patch.Time != nil {
		booking.Time = *patch.Time
	}
	if patch.DurationMin != nil {
		booking.DurationMin = *patch.DurationMin
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		booking.Price = *patch.Price
	}
	if patch.Notes != nil {
		booking.Notes = *patch.Notes
	}

	if err := s.db.WithContext(ctx).Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Store) SaveBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Save(booking).Error
}
