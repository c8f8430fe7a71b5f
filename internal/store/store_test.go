package store

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
)

func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := dbpkg.EnsureSchema(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return New(db), db
}

func newClient(email string) *models.User {
	return &models.User{Email: email, Name: "Test Client", UserType: models.UserTypeClient}
}

// ======================================================
// USERS
// ======================================================

func TestCreateUserDuplicateEmail(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, newClient("a@x.com"))
	require.NoError(t, err)

	_, err = st.CreateUser(ctx, newClient("a@x.com"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicateEmail))

	users, err := st.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	user, err := st.CreateUser(ctx, newClient("  Mixed@Case.COM "))
	require.NoError(t, err)
	assert.Equal(t, "mixed@case.com", user.Email)

	// Lookup is case-insensitive through the same normalization.
	found, err := st.GetUserByEmail(ctx, "MIXED@case.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// And the duplicate check sees through casing too.
	_, err = st.CreateUser(ctx, newClient("MIXED@CASE.COM"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicateEmail))
}

func TestCreateUserDefaultsClientPreferences(t *testing.T) {
	st, _ := setupTestStore(t)

	user, err := st.CreateUser(context.Background(), newClient("prefs@x.com"))
	require.NoError(t, err)

	prefs := user.Preferences.Data()
	assert.Equal(t, 10.0, prefs.MaxDistanceKm)
	assert.Equal(t, "any", prefs.PriceRange)
	assert.True(t, user.IsActive)
}

func TestCreateUserRejectsUnknownType(t *testing.T) {
	st, _ := setupTestStore(t)

	_, err := st.CreateUser(context.Background(), &models.User{
		Email: "x@x.com", Name: "X", UserType: "wizard",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestUpdateUserNotFound(t *testing.T) {
	st, _ := setupTestStore(t)

	name := "ghost"
	_, err := st.UpdateUser(context.Background(), "missing-id", UserPatch{Name: &name})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestUpdateUserMergesOnlyGivenFields(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	user, err := st.CreateUser(ctx, newClient("merge@x.com"))
	require.NoError(t, err)

	phone := "0821234567"
	updated, err := st.UpdateUser(ctx, user.ID, UserPatch{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "0821234567", updated.Phone)
	assert.Equal(t, "Test Client", updated.Name)
	assert.Equal(t, "merge@x.com", updated.Email)
}

// ======================================================
// BARBERS
// ======================================================

func TestCreateBarberProfileOnePerUser(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	user, err := st.CreateUser(ctx, &models.User{
		Email: "b@x.com", Name: "Barber", UserType: models.UserTypeBarber,
	})
	require.NoError(t, err)

	_, err = st.CreateBarberProfile(ctx, &models.BarberProfile{UserID: user.ID, Name: "Barber"})
	require.NoError(t, err)

	_, err = st.CreateBarberProfile(ctx, &models.BarberProfile{UserID: user.ID, Name: "Again"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeConflict))
}

func TestCreateBookingRejectsUnknownStatus(t *testing.T) {
	st, _ := setupTestStore(t)

	_, err := st.CreateBooking(context.Background(), &models.Booking{
		ClientID: "c1", BarberID: "b1", Service: "Haircut", Status: "archived",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestPurgeUserDataRemovesOwnedRows(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	barberUser, err := st.CreateUser(ctx, &models.User{
		Email: "gone@x.com", Name: "Leaving Barber", UserType: models.UserTypeBarber,
	})
	require.NoError(t, err)
	profile, err := st.CreateBarberProfile(ctx, &models.BarberProfile{
		UserID: barberUser.ID, Name: "Leaving Barber",
	})
	require.NoError(t, err)

	_, err = st.CreateRental(ctx, &models.Rental{
		BarberID: profile.ID, Title: "Orphan chair", Price: 100,
		PriceType: models.RentalPerDay, Status: models.RentalAvailable,
	})
	require.NoError(t, err)
	_, err = st.CreateReview(ctx, &models.Review{
		BarberID: profile.ID, ClientID: "c1", Rating: 4,
	})
	require.NoError(t, err)

	pending, err := st.CreateBooking(ctx, &models.Booking{
		ClientID: "c1", BarberID: profile.ID, Service: "Haircut", Status: "pending",
	})
	require.NoError(t, err)
	finished, err := st.CreateBooking(ctx, &models.Booking{
		ClientID: "c1", BarberID: profile.ID, Service: "Haircut", Status: "completed",
	})
	require.NoError(t, err)

	require.NoError(t, st.PurgeUserData(ctx, barberUser.ID, profile.ID))

	rentals, err := st.GetRentalsByBarber(ctx, profile.ID)
	require.NoError(t, err)
	assert.Empty(t, rentals)

	reviews, err := st.GetReviewsByBarber(ctx, profile.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = st.GetBookingByID(ctx, pending.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	// Finished bookings stay for record keeping.
	kept, err := st.GetBookingByID(ctx, finished.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", kept.Status)
}

func TestPurgeUserDataRemovesClientReviews(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	client, err := st.CreateUser(ctx, newClient("writer@x.com"))
	require.NoError(t, err)

	_, err = st.CreateReview(ctx, &models.Review{
		BarberID: "b1", ClientID: client.ID, Rating: 5,
	})
	require.NoError(t, err)

	require.NoError(t, st.PurgeUserData(ctx, client.ID, ""))

	reviews, err := st.GetReviewsByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

// ======================================================
// REVIEWS
// ======================================================

func TestCreateReviewValidatesRating(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := st.CreateReview(ctx, &models.Review{
			BarberID: "b1", ClientID: "c1", Rating: rating,
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation),
			"rating %d should be rejected", rating)
	}

	_, err := st.CreateReview(ctx, &models.Review{
		BarberID: "b1", ClientID: "c1", Rating: 5,
	})
	assert.NoError(t, err)
}

// ======================================================
// EXPORT / IMPORT
// ======================================================

func TestExportImportRoundTrip(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	user, err := st.CreateUser(ctx, newClient("export@x.com"))
	require.NoError(t, err)

	_, err = st.CreateRental(ctx, &models.Rental{
		BarberID: "b1", Title: "Chair one", Price: 200,
		PriceType: models.RentalPerDay, Status: models.RentalAvailable,
	})
	require.NoError(t, err)

	snap, err := st.ExportAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Rentals, 1)

	// A different install imports the snapshot wholesale.
	other, _ := setupTestStore(t)
	require.NoError(t, other.ImportAll(ctx, snap))

	imported, err := other.GetUserByEmail(ctx, "export@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, imported.ID)

	rentals, err := other.GetAllRentals(ctx)
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
	assert.Equal(t, "Chair one", rentals[0].Title)
}

func TestImportReplacesExistingData(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, newClient("old@x.com"))
	require.NoError(t, err)

	require.NoError(t, st.ImportAll(ctx, &Snapshot{
		Users: []models.User{{
			ID: "u-new", Email: "new@x.com", Name: "New",
			UserType: models.UserTypeClient, IsActive: true,
		}},
	}))

	users, err := st.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "new@x.com", users[0].Email)
}

// ======================================================
// SCHEMA VERSIONING
// ======================================================

func TestRequestsWithBudgetAtLeast(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	mk := func(budget float64, status string) {
		t.Helper()
		_, err := st.CreateBookingRequest(ctx, &models.BookingRequest{
			ClientName: "Walk In", ClientEmail: "walkin@x.com",
			Service: "Haircut", MaxPrice: budget, Status: status,
		})
		require.NoError(t, err)
	}
	mk(80, "pending")
	mk(200, "pending")
	mk(300, "accepted")

	reqs, err := st.GetRequestsWithBudgetAtLeast(ctx, 100)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, 200.0, reqs[0].MaxPrice)
}

func TestEnsureSchemaRefusesDowngrade(t *testing.T) {
	_, db := setupTestStore(t)

	// Simulate a store written by a future build.
	require.NoError(t, db.Save(&models.SchemaMeta{
		ID: 1, Version: models.SchemaVersion + 1,
	}).Error)

	err := dbpkg.EnsureSchema(db)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSchemaDowngrade))
}

func TestEnsureSchemaStampsVersion(t *testing.T) {
	_, db := setupTestStore(t)

	var meta models.SchemaMeta
	require.NoError(t, db.First(&meta, 1).Error)
	assert.Equal(t, models.SchemaVersion, meta.Version)
}
