package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientID string `gorm:"size:36;index" json:"clientId"`
	BarberID string `gorm:"size:36;index" json:"barberId"`

	// RequestID links bookings produced by accepting a booking request,
	// one booking per request.
	RequestID string `gorm:"size:36;uniqueIndex:idx_booking_request,where:request_id <> ''" json:"requestId,omitempty"`

	Service     string  `gorm:"size:100;not null" json:"service"`
	Date        string  `gorm:"size:10;index" json:"date"`
	Time        string  `gorm:"size:5" json:"time"`
	DurationMin int     `json:"duration"`
	Price       float64 `json:"price"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
