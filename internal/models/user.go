package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeClient UserType = "client"
	UserTypeBarber UserType = "barber"
)

// ClientPreferences only applies to client-typed users. Barber-specific data
// lives on the linked BarberProfile rather than on a shape-shifting user row.
type ClientPreferences struct {
	PreferredServices []string `json:"preferredServices"`
	MaxDistanceKm     float64  `json:"maxDistance"`
	PriceRange        string   `json:"priceRange"`
}

func DefaultClientPreferences() ClientPreferences {
	return ClientPreferences{
		PreferredServices: []string{},
		MaxDistanceKm:     10,
		PriceRange:        "any",
	}
}

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name         string   `gorm:"size:100;not null" json:"name"`
	Phone        string   `gorm:"size:20" json:"phone"`
	PasswordHash string   `gorm:"size:255" json:"-"`
	UserType     UserType `gorm:"size:10;index;not null" json:"userType"`

	IsGoogleUser bool   `json:"isGoogleUser"`
	Picture      string `gorm:"size:255" json:"picture"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
	IsAdmin      bool   `gorm:"default:false" json:"isAdmin"`

	// Presence fields, written only through the presence tracker.
	Online         bool       `json:"online"`
	LastSeenAt     *time.Time `json:"lastSeenAt"`
	HasOpenRequest bool       `json:"hasOpenRequest"`

	Preferences    datatypes.JSONType[ClientPreferences] `json:"preferences"`
	BookingHistory datatypes.JSONType[[]string]          `json:"bookingHistory"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
