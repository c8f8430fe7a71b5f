package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/legwalet/le-barber/internal/db"
	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/session"
	"github.com/legwalet/le-barber/internal/store"
)

func setupManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := dbpkg.EnsureSchema(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	st := store.New(db)
	return NewManager(st, session.NewMemoryStore()), st
}

func clientSignup(email string) ManualRegistration {
	return ManualRegistration{
		Email:    email,
		Name:     "Thandi",
		Password: "secret123",
		UserType: models.UserTypeClient,
	}
}

// ======================================================
// REGISTRATION
// ======================================================

func TestRegisterManuallyDuplicateEmail(t *testing.T) {
	m, st := setupManager(t)
	ctx := context.Background()

	_, err := m.RegisterManually(ctx, clientSignup("a@x.com"))
	require.NoError(t, err)

	_, err = m.RegisterManually(ctx, clientSignup("a@x.com"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicateEmail))

	users, err := st.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterManuallyHashesPassword(t *testing.T) {
	m, _ := setupManager(t)

	user, err := m.RegisterManually(context.Background(), clientSignup("hash@x.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterManuallyRejectsShortPassword(t *testing.T) {
	m, _ := setupManager(t)

	in := clientSignup("short@x.com")
	in.Password = "abc"
	_, err := m.RegisterManually(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestRegisterBarberCreatesProfile(t *testing.T) {
	m, st := setupManager(t)
	ctx := context.Background()

	lat, lng := -33.9249, 18.4241
	user, err := m.RegisterManually(ctx, ManualRegistration{
		Email:        "cuts@x.com",
		Name:         "Sipho",
		Password:     "secret123",
		UserType:     models.UserTypeBarber,
		BusinessName: "Sipho's Cuts",
		Lat:          &lat,
		Lng:          &lng,
	})
	require.NoError(t, err)

	profile, err := st.GetBarberByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sipho's Cuts", profile.BusinessName)
	assert.False(t, profile.IsVerified)
}

func TestRegisterBarberWithInvitationVerifies(t *testing.T) {
	m, st := setupManager(t)
	ctx := context.Background()

	inv, err := st.CreateInvitation(ctx, &models.Invitation{
		InviterID:    "someone",
		InviteeEmail: "invited@x.com",
	})
	require.NoError(t, err)

	user, err := m.RegisterManually(ctx, ManualRegistration{
		Email:          "invited@x.com",
		Name:           "Invited",
		Password:       "secret123",
		UserType:       models.UserTypeBarber,
		InvitationCode: inv.Code,
	})
	require.NoError(t, err)

	profile, err := st.GetBarberByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsVerified)
	assert.Equal(t, inv.Code, profile.InvitationCode)

	accepted, err := st.GetInvitationByCode(ctx, inv.Code)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, accepted.Status)
}

// ======================================================
// CREDENTIAL SIGN-IN
// ======================================================

func TestRegisterWithCredentialReusesExistingByEmail(t *testing.T) {
	m, st := setupManager(t)
	ctx := context.Background()

	existing, err := m.RegisterManually(ctx, clientSignup("reuse@x.com"))
	require.NoError(t, err)

	user, err := m.RegisterWithCredential(ctx, Claim{
		SubjectID: "google-123",
		Email:     "reuse@x.com",
		Name:      "Thandi M",
		Picture:   "https://pic",
	}, models.UserTypeClient)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "Thandi M", user.Name)
	assert.Equal(t, "https://pic", user.Picture)

	users, err := st.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterWithCredentialCreatesGoogleUser(t *testing.T) {
	m, _ := setupManager(t)

	user, err := m.RegisterWithCredential(context.Background(), Claim{
		SubjectID: "google-456",
		Email:     "fresh@x.com",
		Name:      "Fresh",
	}, models.UserTypeClient)
	require.NoError(t, err)

	assert.True(t, user.IsGoogleUser)
	assert.Empty(t, user.PasswordHash)
}

// ======================================================
// LOGIN
// ======================================================

func TestLoginWrongPassword(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	_, err := m.RegisterManually(ctx, clientSignup("login@x.com"))
	require.NoError(t, err)

	_, err = m.Login(ctx, "login@x.com", "wrong-password")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidLogin))

	user, err := m.Login(ctx, "login@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "login@x.com", user.Email)
}

func TestLoginGoogleUserHasNoPassword(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	_, err := m.RegisterWithCredential(ctx, Claim{
		SubjectID: "g-1", Email: "g@x.com", Name: "G",
	}, models.UserTypeClient)
	require.NoError(t, err)

	_, err = m.Login(ctx, "g@x.com", "anything")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidLogin))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	user, err := m.RegisterManually(ctx, clientSignup("off@x.com"))
	require.NoError(t, err)

	_, err = m.Deactivate(ctx, user.ID, false)
	require.NoError(t, err)

	_, err = m.Login(ctx, "off@x.com", "secret123")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidLogin))
}

// ======================================================
// SESSIONS
// ======================================================

func TestResolveSessionRoundTrip(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	user, err := m.RegisterManually(ctx, clientSignup("sess@x.com"))
	require.NoError(t, err)
	require.NoError(t, m.StartSession(ctx, "token-1", user.ID))

	resolved, err := m.ResolveSession(ctx, "token-1")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestResolveSessionDiscardsStaleReference(t *testing.T) {
	m, st := setupManager(t)
	ctx := context.Background()

	user, err := m.RegisterManually(ctx, clientSignup("stale@x.com"))
	require.NoError(t, err)
	require.NoError(t, m.StartSession(ctx, "token-2", user.ID))

	// The record disappears out from under the session.
	require.NoError(t, st.DeleteUser(ctx, user.ID))

	resolved, err := m.ResolveSession(ctx, "token-2")
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// And the dangling reference is gone too.
	resolved, err = m.ResolveSession(ctx, "token-2")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestLogoutClearsSessionAndPresence(t *testing.T) {
	m, st := setupManager(t)
	ctx := context.Background()

	user, err := m.RegisterManually(ctx, clientSignup("bye@x.com"))
	require.NoError(t, err)
	require.NoError(t, m.StartSession(ctx, "token-3", user.ID))

	online := true
	_, err = st.UpdateUser(ctx, user.ID, store.UserPatch{Online: &online})
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, "token-3", user.ID))

	resolved, err := m.ResolveSession(ctx, "token-3")
	require.NoError(t, err)
	assert.Nil(t, resolved)

	fresh, err := st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Online)
	assert.NotNil(t, fresh.LastSeenAt)
}
