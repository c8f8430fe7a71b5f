package store

import (
	"context"

	"gorm.io/datatypes"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

// CreateBarberProfile persists a profile. One profile per user, enforced
// before the write so the caller gets a conflict rather than a driver error.
func (s *Store) CreateBarberProfile(ctx context.Context, profile *models.BarberProfile) (*models.BarberProfile, error) {
	if profile.UserID == "" || profile.Name == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.BarberProfile{}).
		Where("user_id = ?", profile.UserID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrBusiness(httperr.CodeConflict)
	}

	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Store) GetBarberByID(ctx context.Context, id string) (*models.BarberProfile, error) {
	var profile models.BarberProfile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (s *Store) GetBarberByUserID(ctx context.Context, userID string) (*models.BarberProfile, error) {
	var profile models.BarberProfile
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (s *Store) GetAllBarbers(ctx context.Context) ([]models.BarberProfile, error) {
	var profiles []models.BarberProfile
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

type BarberPatch struct {
	Name          *string
	BusinessName  *string
	Phone         *string
	Picture       *string
	Address       *string
	Lat           *float64
	Lng           *float64
	Services      *[]models.ServiceOffering
	BusinessHours *map[string]models.DayHours
	Portfolio     *[]string
	IsVerified    *bool
}

func (s *Store) UpdateBarber(ctx context.Context, id string, patch BarberPatch) (*models.BarberProfile, error) {
	profile, err := s.GetBarberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.BusinessName != nil {
		profile.BusinessName = *patch.BusinessName
	}
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.Picture != nil {
		profile.Picture = *patch.Picture
	}
	if patch.Address != nil {
		profile.Address = *patch.Address
	}
	if patch.Lat != nil {
		profile.Lat = patch.Lat
	}
	if patch.Lng != nil {
		profile.Lng = patch.Lng
	}
	if patch.Services != nil {
		profile.Services = datatypes.NewJSONType(*patch.Services)
	}
	if patch.BusinessHours != nil {
		profile.BusinessHours = datatypes.NewJSONType(*patch.BusinessHours)
	}
	if patch.Portfolio != nil {
		profile.Portfolio = datatypes.NewJSONType(*patch.Portfolio)
	}
	if patch.IsVerified != nil {
		profile.IsVerified = *patch.IsVerified
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// SetBarberRating persists the derived rating aggregate. Only the review
// use case calls this.
func (s *Store) SetBarberRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	res := s.db.WithContext(ctx).
		Model(&models.BarberProfile{}).
		Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "review_count": reviewCount})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}

func (s *Store) DeleteBarberProfile(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.BarberProfile{}, "id = ?", id).Error
}
