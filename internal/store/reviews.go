package store

import (
	"context"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

// CreateReview persists the row only. Rating recomputation is the review
// use case's side effect, not the store's.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.ClientID == "" || review.BarberID == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Store) GetReviewsByBarber(ctx context.Context, barberID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *Store) GetReviewsByClient(ctx context.Context, clientID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
