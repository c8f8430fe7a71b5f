package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRequest is an unassigned "request a barber" broadcast, distinct
// from a Booking which is already matched to one barber.
type BookingRequest struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Nil for anonymous quick bookings; contact fields carry the identity.
	ClientID    *string `gorm:"size:36;index" json:"clientId"`
	ClientName  string  `gorm:"size:100;not null" json:"clientName"`
	ClientEmail string  `gorm:"size:100" json:"clientEmail"`
	ClientPhone string  `gorm:"size:20" json:"clientPhone"`

	Service       string  `gorm:"size:100;not null" json:"service"`
	PreferredDate string  `gorm:"size:10" json:"preferredDate"`
	PreferredTime string  `gorm:"size:5" json:"preferredTime"`
	MaxPrice      float64 `gorm:"index" json:"maxPrice"`

	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Notes string   `gorm:"size:500" json:"notes"`

	Status string `gorm:"size:10;index;default:'pending'" json:"status"`

	AcceptedBy string     `gorm:"size:36" json:"acceptedBy,omitempty"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	DeclinedBy string     `gorm:"size:36" json:"declinedBy,omitempty"`
	DeclinedAt *time.Time `json:"declinedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *BookingRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *BookingRequest) Location() (float64, float64, bool) {
	if r.Lat == nil || r.Lng == nil {
		return 0, 0, false
	}
	return *r.Lat, *r.Lng, true
}
