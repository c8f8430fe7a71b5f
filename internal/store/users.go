package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/validators"
)

// CreateUser persists a new account. Email is unique across all users.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = validators.Normalize(user.Email)
	if user.Email == "" || user.Name == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if user.UserType != models.UserTypeClient && user.UserType != models.UserTypeBarber {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", user.Email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrBusiness(httperr.CodeDuplicateEmail)
	}

	if user.UserType == models.UserTypeClient && len(user.Preferences.Data().PriceRange) == 0 {
		user.Preferences = datatypes.NewJSONType(models.DefaultClientPreferences())
	}
	user.IsActive = true

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", validators.Normalize(email)).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) GetUsersByType(ctx context.Context, userType models.UserType) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("user_type = ?", userType).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UserPatch merges non-nil fields into an existing user. UserType is
// deliberately absent: the role is immutable post-creation.
type UserPatch struct {
	Name           *string
	Phone          *string
	Picture        *string
	IsActive       *bool
	Online         *bool
	LastSeenAt     *time.Time
	HasOpenRequest *bool
	Preferences    *models.ClientPreferences
	BookingHistory *[]string
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Picture != nil {
		user.Picture = *patch.Picture
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.Online != nil {
		user.Online = *patch.Online
	}
	if patch.LastSeenAt != nil {
		user.LastSeenAt = patch.LastSeenAt
	}
	if patch.HasOpenRequest != nil {
		user.HasOpenRequest = *patch.HasOpenRequest
	}
	if patch.Preferences != nil {
		user.Preferences = datatypes.NewJSONType(*patch.Preferences)
	}
	if patch.BookingHistory != nil {
		user.BookingHistory = datatypes.NewJSONType(*patch.BookingHistory)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// AppendBookingHistory records a booking id on the client's history list.
func (s *Store) AppendBookingHistory(ctx context.Context, userID, bookingID string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	history := append(user.BookingHistory.Data(), bookingID)
	user.BookingHistory = datatypes.NewJSONType(history)
	return s.db.WithContext(ctx).Save(user).Error
}

// DeleteUser removes the account row. Cascading cleanup of owned records is
// the admin use case's job, best effort.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}

// PurgeUserData removes the rows a deleted account leaves behind:
// rentals and reviews tied to the barber profile, reviews the user
// wrote as a client, and bookings that never got past pending.
// Completed and confirmed bookings stay for record keeping. Best
// effort: every collection is attempted even when an earlier one
// fails.
func (s *Store) PurgeUserData(ctx context.Context, userID, barberID string) error {
	db := s.db.WithContext(ctx)

	var errs []error
	if barberID != "" {
		errs = append(errs,
			db.Delete(&models.Rental{}, "barber_id = ?", barberID).Error,
			db.Delete(&models.Review{}, "barber_id = ?", barberID).Error,
			db.Delete(&models.Booking{}, "status = ? AND barber_id = ?",
				"pending", barberID).Error,
		)
	}
	errs = append(errs,
		db.Delete(&models.Review{}, "client_id = ?", userID).Error,
		db.Delete(&models.Booking{}, "status = ? AND client_id = ?",
			"pending", userID).Error,
	)
	return errors.Join(errs...)
}
