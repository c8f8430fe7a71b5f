package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/domain/request"
	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

type MatchingGormRepository struct {
	db *gorm.DB
}

func NewMatchingGormRepository(db *gorm.DB) *MatchingGormRepository {
	return &MatchingGormRepository{db: db}
}

// --------------------------------------------------
// Booking requests
// --------------------------------------------------

func (r *MatchingGormRepository) GetRequest(
	ctx context.Context,
	id string,
) (*models.BookingRequest, error) {

	var req models.BookingRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &req, nil
}

func (r *MatchingGormRepository) CreateRequest(
	ctx context.Context,
	req *models.BookingRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *MatchingGormRepository) ResolveRequest(
	ctx context.Context,
	req *models.BookingRequest,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.BookingRequest{}).
		Where("id = ? AND status = ?", req.ID, string(request.StatusPending)).
		Updates(map[string]any{
			"status":      req.Status,
			"accepted_by": req.AcceptedBy,
			"accepted_at": req.AcceptedAt,
			"declined_by": req.DeclinedBy,
			"declined_at": req.DeclinedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else resolved it between our read and this write.
		return httperr.ErrBusiness(httperr.CodeAlreadyResolved)
	}
	return nil
}

func (r *MatchingGormRepository) ListAcceptedRequestsWithoutBooking(
	ctx context.Context,
) ([]models.BookingRequest, error) {

	var reqs []models.BookingRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", string(request.StatusAccepted)).
		Where("id NOT IN (?)",
			r.db.Model(&models.Booking{}).
				Select("request_id").
				Where("request_id <> ''"),
		).
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MatchingGormRepository) ExpireRequestsBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.BookingRequest{}).
		Where("status = ? AND created_at < ?", string(request.StatusPending), cutoff).
		Update("status", string(request.StatusExpired))
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *MatchingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *MatchingGormRepository) GetBookingForBarber(
	ctx context.Context,
	bookingID string,
	barberID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", bookingID, barberID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *MatchingGormRepository) SaveBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *MatchingGormRepository) HasBookingForRequest(
	ctx context.Context,
	requestID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("request_id = ?", requestID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Barbers / rentals
// --------------------------------------------------

func (r *MatchingGormRepository) GetBarber(
	ctx context.Context,
	id string,
) (*models.BarberProfile, error) {

	var profile models.BarberProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

func (r *MatchingGormRepository) ListBarbers(
	ctx context.Context,
) ([]models.BarberProfile, error) {

	var profiles []models.BarberProfile
	if err := r.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *MatchingGormRepository) ListRentalsByStatus(
	ctx context.Context,
	status string,
) ([]models.Rental, error) {

	var rentals []models.Rental
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *MatchingGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *MatchingGormRepository) ListReviewsForBarber(
	ctx context.Context,
	barberID string,
) ([]models.Review, error) {

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *MatchingGormRepository) SetBarberRating(
	ctx context.Context,
	barberID string,
	rating float64,
	reviewCount int,
) error {

	return r.db.WithContext(ctx).
		Model(&models.BarberProfile{}).
		Where("id = ?", barberID).
		Updates(map[string]any{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
}

// --------------------------------------------------
// Client presence flag
// --------------------------------------------------

func (r *MatchingGormRepository) SetClientOpenRequest(
	ctx context.Context,
	clientID string,
	open bool,
) error {

	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", clientID).
		Update("has_open_request", open).Error
}

// Compile-time check
var _ domain.Repository = (*MatchingGormRepository)(nil)
