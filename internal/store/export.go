package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/legwalet/le-barber/internal/models"
)

// Snapshot is a full copy of every collection, used for portability between
// installs.
type Snapshot struct {
	Users           []models.User           `json:"users"`
	Barbers         []models.BarberProfile  `json:"barbers"`
	Bookings        []models.Booking        `json:"bookings"`
	Rentals         []models.Rental         `json:"rentals"`
	Reviews         []models.Review         `json:"reviews"`
	Invitations     []models.Invitation     `json:"invitations"`
	BookingRequests []models.BookingRequest `json:"bookingRequests"`
}

func (s *Store) ExportAll(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	db := s.db.WithContext(ctx)

	for _, dst := range []any{
		&snap.Users, &snap.Barbers, &snap.Bookings, &snap.Rentals,
		&snap.Reviews, &snap.Invitations, &snap.BookingRequests,
	} {
		if err := db.Find(dst).Error; err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// ImportAll replaces every collection with the snapshot's contents. The
// clear-then-insert runs inside one transaction, so readers never observe a
// half-imported state.
func (s *Store) ImportAll(ctx context.Context, snap *Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearAll(tx); err != nil {
			return err
		}

		if err := insertAll(tx, snap.Users); err != nil {
			return err
		}
		if err := insertAll(tx, snap.Barbers); err != nil {
			return err
		}
		if err := insertAll(tx, snap.Bookings); err != nil {
			return err
		}
		if err := insertAll(tx, snap.Rentals); err != nil {
			return err
		}
		if err := insertAll(tx, snap.Reviews); err != nil {
			return err
		}
		if err := insertAll(tx, snap.Invitations); err != nil {
			return err
		}
		return insertAll(tx, snap.BookingRequests)
	})
}

// Clear empties every collection. Test and admin use only.
func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(clearAll)
}

func clearAll(tx *gorm.DB) error {
	for _, model := range []any{
		&models.User{}, &models.BarberProfile{}, &models.Booking{},
		&models.Rental{}, &models.Review{}, &models.Invitation{},
		&models.BookingRequest{},
	} {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 100).Error
}
