package identity

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/session"
	"github.com/legwalet/le-barber/internal/store"
	"github.com/legwalet/le-barber/internal/validators"
)

// Claim is a verified external-identity assertion. The OAuth collaborator
// has already validated the token; the core never sees it.
type Claim struct {
	SubjectID string
	Email     string
	Name      string
	Picture   string
}

// ManualRegistration carries the signup form. Barber fields are ignored for
// client signups.
type ManualRegistration struct {
	Email    string
	Name     string
	Phone    string
	Password string
	UserType models.UserType

	BusinessName   string
	Lat            *float64
	Lng            *float64
	Address        string
	Services       []models.ServiceOffering
	InvitationCode string
}

// Manager owns the account lifecycle and the signed-in session. It is the
// only writer of session state and of the isActive flag.
type Manager struct {
	store    *store.Store
	sessions session.Store
}

func NewManager(st *store.Store, sessions session.Store) *Manager {
	return &Manager{store: st, sessions: sessions}
}

// RegisterWithCredential signs a user in from a verified external claim.
// An existing account with the claim's email is reused with its identity
// fields refreshed; the stored userType wins over the caller's choice,
// since the role is immutable post-creation.
func (m *Manager) RegisterWithCredential(ctx context.Context, claim Claim, userType models.UserType) (*models.User, error) {
	if claim.Email == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	existing, err := m.store.GetUserByEmail(ctx, claim.Email)
	if err == nil {
		if existing.UserType != userType {
			log.Printf("credential sign-in for %s kept stored role %q over requested %q",
				existing.ID, existing.UserType, userType)
		}
		name, picture := claim.Name, claim.Picture
		return m.store.UpdateUser(ctx, existing.ID, store.UserPatch{
			Name:    &name,
			Picture: &picture,
		})
	}
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:        claim.Email,
		Name:         claim.Name,
		Picture:      claim.Picture,
		UserType:     userType,
		IsGoogleUser: true,
	}
	user, err = m.store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	if userType == models.UserTypeBarber {
		if err := m.createBarberProfile(ctx, user, ManualRegistration{}); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// RegisterManually creates an account from the signup form.
func (m *Manager) RegisterManually(ctx context.Context, in ManualRegistration) (*models.User, error) {
	in.Email = validators.Normalize(in.Email)
	if in.Email == "" || in.Name == "" || len(in.Password) < 6 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: string(hashed),
		UserType:     in.UserType,
	}
	user, err = m.store.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	if in.UserType == models.UserTypeBarber {
		if err := m.createBarberProfile(ctx, user, in); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (m *Manager) createBarberProfile(ctx context.Context, user *models.User, in ManualRegistration) error {
	name := user.Name
	if name == "" {
		name = user.Email
	}
	profile := &models.BarberProfile{
		UserID:       user.ID,
		Name:         name,
		BusinessName: in.BusinessName,
		Email:        user.Email,
		Phone:        user.Phone,
		Picture:      user.Picture,
		Lat:          in.Lat,
		Lng:          in.Lng,
		Address:      in.Address,
	}
	if len(in.Services) > 0 {
		profile.Services = datatypes.NewJSONType(in.Services)
	}

	if in.InvitationCode != "" {
		if inv, err := m.store.GetInvitationByCode(ctx, in.InvitationCode); err == nil &&
			inv.Status == models.InvitationPending &&
			inv.ExpiresAt.After(time.Now()) {

			profile.InvitationCode = inv.Code
			profile.IsVerified = true
			if err := m.store.SetInvitationStatus(ctx, inv.ID, models.InvitationAccepted); err != nil {
				log.Printf("failed to mark invitation %s accepted: %v", inv.ID, err)
			}
		}
	}

	_, err := m.store.CreateBarberProfile(ctx, profile)
	return err
}

// Login verifies the credentials against the stored hash. Credential
// accounts carry no hash and cannot sign in manually.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidLogin)
	}
	if user.PasswordHash == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidLogin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidLogin)
	}
	return user, nil
}

// StartSession records the session reference for a signed-in user.
func (m *Manager) StartSession(ctx context.Context, token, userID string) error {
	return m.sessions.Save(ctx, token, userID)
}

// ResolveSession re-resolves the full user record from the entity store.
// A stale reference (user deleted since) is discarded, not surfaced.
func (m *Manager) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	userID, err := m.sessions.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	user, err := m.store.GetUserByID(ctx, userID)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		if delErr := m.sessions.Delete(ctx, token); delErr != nil {
			log.Printf("failed to discard stale session: %v", delErr)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the session and marks the user offline.
func (m *Manager) Logout(ctx context.Context, token, userID string) error {
	if err := m.sessions.Delete(ctx, token); err != nil {
		return err
	}

	offline := false
	now := time.Now()
	_, err := m.store.UpdateUser(ctx, userID, store.UserPatch{
		Online:     &offline,
		LastSeenAt: &now,
	})
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil
	}
	return err
}

// BarberProfileFor returns the linked profile, nil for non-barbers.
func (m *Manager) BarberProfileFor(ctx context.Context, userID string) (*models.BarberProfile, error) {
	profile, err := m.store.GetBarberByUserID(ctx, userID)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// BookingsFor dispatches by role: clients see bookings they made, barbers
// see bookings against their profile.
func (m *Manager) BookingsFor(ctx context.Context, user *models.User) ([]models.Booking, error) {
	if user.UserType == models.UserTypeBarber {
		profile, err := m.BarberProfileFor(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return []models.Booking{}, nil
		}
		return m.store.GetBookingsByBarber(ctx, profile.ID)
	}
	return m.store.GetBookingsByClient(ctx, user.ID)
}

// Deactivate flips isActive; deactivated accounts cannot log in.
func (m *Manager) Deactivate(ctx context.Context, userID string, active bool) (*models.User, error) {
	return m.store.UpdateUser(ctx, userID, store.UserPatch{IsActive: &active})
}
