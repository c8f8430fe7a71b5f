package store

import (
	"context"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

func (s *Store) CreateBookingRequest(ctx context.Context, req *models.BookingRequest) (*models.BookingRequest, error) {
	if req.Service == "" || req.ClientName == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if req.ClientID == nil && req.ClientEmail == "" && req.ClientPhone == "" {
		// Anonymous quick bookings still need a way to reach the client.
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if req.MaxPrice < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if req.Status == "" {
		req.Status = "pending"
	}

	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Store) GetBookingRequestByID(ctx context.Context, id string) (*models.BookingRequest, error) {
	var req models.BookingRequest
	if err := s.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

func (s *Store) GetRequestsByClient(ctx context.Context, clientID string) ([]models.BookingRequest, error) {
	var reqs []models.BookingRequest
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *Store) GetRequestsByStatus(ctx context.Context, status string) ([]models.BookingRequest, error) {
	var reqs []models.BookingRequest
	if err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// GetRequestsWithBudgetAtLeast lists pending requests whose budget covers the
// given price, so barbers can browse only the work they would take.
func (s *Store) GetRequestsWithBudgetAtLeast(ctx context.Context, price float64) ([]models.BookingRequest, error) {
	var reqs []models.BookingRequest
	if err := s.db.WithContext(ctx).
		Where("status = ? AND max_price >= ?", "pending", price).
		Order("max_price DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *Store) GetAllBookingRequests(ctx context.Context) ([]models.BookingRequest, error) {
	var reqs []models.BookingRequest
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}
