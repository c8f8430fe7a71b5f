package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ServiceOffering is one line of a barber's price list.
type ServiceOffering struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration"`
}

// DayHours is the opening window for one weekday, "15:04" strings.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// BarberProfile is the service-facing projection of a barber user,
// linked 1:1 via UserID.
type BarberProfile struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;uniqueIndex;not null" json:"userId"`

	Name         string `gorm:"size:100;not null" json:"name"`
	BusinessName string `gorm:"size:100" json:"businessName"`
	Email        string `gorm:"size:100" json:"email"`
	Phone        string `gorm:"size:20" json:"phone"`
	Picture      string `gorm:"size:255" json:"picture"`

	Lat     *float64 `gorm:"index:idx_barber_location" json:"lat"`
	Lng     *float64 `gorm:"index:idx_barber_location" json:"lng"`
	Address string   `gorm:"size:255" json:"address"`

	Services      datatypes.JSONType[[]ServiceOffering]   `json:"services"`
	BusinessHours datatypes.JSONType[map[string]DayHours] `json:"businessHours"`
	Portfolio     datatypes.JSONType[[]string]            `json:"portfolio"`

	// Derived from reviews, recomputed on every AddReview. Never hand-edited.
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`

	IsVerified     bool   `gorm:"default:false" json:"isVerified"`
	InvitationCode string `gorm:"size:36;index" json:"invitationCode"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *BarberProfile) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Location returns the profile coordinate, false when onboarding has not
// set one yet.
func (b *BarberProfile) Location() (float64, float64, bool) {
	if b.Lat == nil || b.Lng == nil {
		return 0, 0, false
	}
	return *b.Lat, *b.Lng, true
}
