package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"

	InvitationTTL = 7 * 24 * time.Hour
)

// Invitation is a barber-to-barber referral token.
type Invitation struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	InviterID    string `gorm:"size:36;index" json:"inviterId"`
	InviterName  string `gorm:"size:100" json:"inviterName"`
	InviterEmail string `gorm:"size:100" json:"inviterEmail"`
	InviteeEmail string `gorm:"size:100;index" json:"inviteeEmail"`

	Code   string `gorm:"size:12;uniqueIndex;not null" json:"code"`
	Status string `gorm:"size:10;index;default:'pending'" json:"status"`

	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Code == "" {
		i.Code = NewInvitationCode()
	}
	if i.ExpiresAt.IsZero() {
		i.ExpiresAt = time.Now().Add(InvitationTTL)
	}
	return nil
}

// NewInvitationCode returns a 12-character alphanumeric referral code.
func NewInvitationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:12]
}
