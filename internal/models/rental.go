package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RentalPerDay   = "per_day"
	RentalPerWeek  = "per_week"
	RentalPerMonth = "per_month"

	RentalAvailable = "available"
	RentalPending   = "pending"
	RentalRented    = "rented"
)

type RentalContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Rental is a barber-owned chair or space offered for rent.
type Rental struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	BarberID string `gorm:"size:36;index" json:"barberId"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	Address     string `gorm:"size:255" json:"address"`

	Lat *float64 `gorm:"index:idx_rental_location" json:"lat"`
	Lng *float64 `gorm:"index:idx_rental_location" json:"lng"`

	Price     float64 `json:"price"`
	PriceType string  `gorm:"size:10;default:'per_day'" json:"priceType"`

	Amenities   datatypes.JSONType[[]string]      `json:"amenities"`
	Images      datatypes.JSONType[[]string]      `json:"images"`
	ContactInfo datatypes.JSONType[RentalContact] `json:"contactInfo"`

	Status string `gorm:"size:10;index;default:'available'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Rental) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Rental) Location() (float64, float64, bool) {
	if r.Lat == nil || r.Lng == nil {
		return 0, 0, false
	}
	return *r.Lat, *r.Lng, true
}
