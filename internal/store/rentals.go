package store

import (
	"context"

	"gorm.io/datatypes"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

func (s *Store) CreateRental(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	if rental.BarberID == "" || rental.Title == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if rental.Price < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	switch rental.PriceType {
	case "":
		rental.PriceType = models.RentalPerDay
	case models.RentalPerDay, models.RentalPerWeek, models.RentalPerMonth:
	default:
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if rental.Status == "" {
		rental.Status = models.RentalAvailable
	}

	if err := s.db.WithContext(ctx).Create(rental).Error; err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *Store) GetRentalByID(ctx context.Context, id string) (*models.Rental, error) {
	var rental models.Rental
	if err := s.db.WithContext(ctx).First(&rental, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rental, nil
}

func (s *Store) GetRentalsByBarber(ctx context.Context, barberID string) ([]models.Rental, error) {
	var rentals []models.Rental
	if err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at ASC").
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (s *Store) GetRentalsByStatus(ctx context.Context, status string) ([]models.Rental, error) {
	var rentals []models.Rental
	if err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (s *Store) GetAllRentals(ctx context.Context) ([]models.Rental, error) {
	var rentals []models.Rental
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

type RentalPatch struct {
	Title       *string
	Description *string
	Address     *string
	Lat         *float64
	Lng         *float64
	Price       *float64
	PriceType   *string
	Amenities   *[]string
	Images      *[]string
	ContactInfo *models.RentalContact
	Status      *string
}

func (s *Store) UpdateRental(ctx context.Context, id string, patch RentalPatch) (*models.Rental, error) {
	rental, err := s.GetRentalByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		rental.Title = *patch.Title
	}
	if patch.Description != nil {
		rental.Description = *patch.Description
	}
	if patch.Address != nil {
		rental.Address = *patch.Address
	}
	if patch.Lat != nil {
		rental.Lat = patch.Lat
	}
	if patch.Lng != nil {
		rental.Lng = patch.Lng
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		rental.Price = *patch.Price
	}
	if patch.PriceType != nil {
		switch *patch.PriceType {
		case models.RentalPerDay, models.RentalPerWeek, models.RentalPerMonth:
			rental.PriceType = *patch.PriceType
		default:
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
	}
	if patch.Amenities != nil {
		rental.Amenities = datatypes.NewJSONType(*patch.Amenities)
	}
	if patch.Images != nil {
		rental.Images = datatypes.NewJSONType(*patch.Images)
	}
	if patch.ContactInfo != nil {
		rental.ContactInfo = datatypes.NewJSONType(*patch.ContactInfo)
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.RentalAvailable, models.RentalPending, models.RentalRented:
			rental.Status = *patch.Status
		default:
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
	}

	if err := s.db.WithContext(ctx).Save(rental).Error; err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *Store) DeleteRental(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Rental{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}
