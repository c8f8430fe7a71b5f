package models

import "time"

// SchemaVersion is the current store layout generation. History:
//
//	1: users, barbers, bookings, rentals, reviews
//	2: invitations
//	3: booking requests, presence fields
const SchemaVersion = 3

// SchemaMeta is a single-row table recording which schema generation last
// touched this store. Opening a store written by a newer generation fails
// fast instead of silently wiping it.
type SchemaMeta struct {
	ID        uint `gorm:"primaryKey"`
	Version   int  `gorm:"not null"`
	UpdatedAt time.Time
}
