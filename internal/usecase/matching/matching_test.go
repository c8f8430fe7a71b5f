package matching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/legwalet/le-barber/internal/audit"
	"github.com/legwalet/le-barber/internal/config"
	dbpkg "github.com/legwalet/le-barber/internal/db"
	"github.com/legwalet/le-barber/internal/geo"
	"github.com/legwalet/le-barber/internal/httperr"
	infraRepo "github.com/legwalet/le-barber/internal/infra/repository"
	"github.com/legwalet/le-barber/internal/mailer"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/presence"
	"github.com/legwalet/le-barber/internal/store"
)

type fixture struct {
	db      *gorm.DB
	store   *store.Store
	repo    *infraRepo.MatchingGormRepository
	audit   *audit.Dispatcher
	mailer  *mailer.Mailer
	hub     *presence.Hub
	create  *CreateRequest
	accept  *AcceptRequest
	decline *DeclineRequest
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := dbpkg.EnsureSchema(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f := &fixture{
		db:     db,
		store:  store.New(db),
		repo:   infraRepo.NewMatchingGormRepository(db),
		audit:  audit.NewDispatcher(ctx, audit.New(db)),
		mailer: mailer.New(&config.Config{}),
		hub:    presence.NewHub(),
	}
	go f.hub.Run(ctx)

	f.create = NewCreateRequest(f.repo, f.audit, f.mailer, f.hub)
	f.accept = NewAcceptRequest(f.repo, f.audit, f.mailer, f.hub)
	f.decline = NewDeclineRequest(f.repo, f.audit)
	return f
}

func (f *fixture) seedBarber(t *testing.T, email string, lat, lng float64) *models.BarberProfile {
	t.Helper()
	ctx := context.Background()

	user, err := f.store.CreateUser(ctx, &models.User{
		Email: email, Name: "Barber " + email, UserType: models.UserTypeBarber,
	})
	require.NoError(t, err)

	profile, err := f.store.CreateBarberProfile(ctx, &models.BarberProfile{
		UserID: user.ID, Name: user.Name, Email: email, Lat: &lat, Lng: &lng,
	})
	require.NoError(t, err)
	return profile
}

func (f *fixture) seedClient(t *testing.T, email string) *models.User {
	t.Helper()

	user, err := f.store.CreateUser(context.Background(), &models.User{
		Email: email, Name: "Client " + email, UserType: models.UserTypeClient,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) openRequest(t *testing.T, clientID *string) *models.BookingRequest {
	t.Helper()

	req, err := f.create.Execute(context.Background(), CreateRequestInput{
		ClientID:      clientID,
		ClientName:    "Walk In",
		ClientEmail:   "walkin@x.com",
		Service:       "Haircut",
		PreferredDate: "2026-09-10",
		PreferredTime: "14:30",
		MaxPrice:      150,
	})
	require.NoError(t, err)
	return req
}

// ======================================================
// REQUEST LIFECYCLE
// ======================================================

func TestAcceptCreatesConfirmedBooking(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	barber := f.seedBarber(t, "b1@x.com", -33.9180, 18.4231)
	client := f.seedClient(t, "c1@x.com")
	req := f.openRequest(t, &client.ID)

	// Opening a request flags the client.
	flagged, err := f.store.GetUserByID(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, flagged.HasOpenRequest)

	booking, err := f.accept.Execute(ctx, req.ID, barber.ID)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", booking.Status)
	assert.Equal(t, req.ID, booking.RequestID)
	assert.Equal(t, barber.ID, booking.BarberID)
	assert.Equal(t, client.ID, booking.ClientID)
	assert.Equal(t, "Haircut", booking.Service)
	assert.Equal(t, "2026-09-10", booking.Date)
	assert.Equal(t, "14:30", booking.Time)
	assert.Equal(t, 150.0, booking.Price)

	resolved, err := f.store.GetBookingRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", resolved.Status)
	assert.Equal(t, barber.ID, resolved.AcceptedBy)
	assert.NotNil(t, resolved.AcceptedAt)

	// Accept clears the client's open-request flag.
	cleared, err := f.store.GetUserByID(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, cleared.HasOpenRequest)
}

func TestDeclineThenAcceptFailsWithoutBooking(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	barberA := f.seedBarber(t, "a@x.com", -33.9180, 18.4231)
	barberB := f.seedBarber(t, "b@x.com", -33.9200, 18.4250)
	req := f.openRequest(t, nil)

	declined, err := f.decline.Execute(ctx, req.ID, barberA.ID)
	require.NoError(t, err)
	assert.Equal(t, "declined", declined.Status)
	assert.Equal(t, barberA.ID, declined.DeclinedBy)

	_, err = f.accept.Execute(ctx, req.ID, barberB.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyResolved))

	// No booking was created by the losing accept.
	has, err := f.repo.HasBookingForRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.False(t, has)

	// And the request kept the first resolution.
	final, err := f.store.GetBookingRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "declined", final.Status)
	assert.Empty(t, final.AcceptedBy)
}

func TestAcceptTwiceFails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	barber := f.seedBarber(t, "one@x.com", -33.9180, 18.4231)
	other := f.seedBarber(t, "two@x.com", -33.9200, 18.4250)
	req := f.openRequest(t, nil)

	_, err := f.accept.Execute(ctx, req.ID, barber.ID)
	require.NoError(t, err)

	_, err = f.accept.Execute(ctx, req.ID, other.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyResolved))

	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Where("request_id = ?", req.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateRequestAnonymousNeedsContact(t *testing.T) {
	f := setup(t)

	_, err := f.create.Execute(context.Background(), CreateRequestInput{
		ClientName: "Ghost",
		Service:    "Haircut",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

// ======================================================
// RATING AGGREGATION
// ======================================================

func TestAddReviewRecomputesRating(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	barber := f.seedBarber(t, "rated@x.com", -33.9180, 18.4231)
	client := f.seedClient(t, "reviewer@x.com")
	addReview := NewAddReview(f.repo, f.audit)

	_, err := addReview.Execute(ctx, AddReviewInput{
		BarberID: barber.ID, ClientID: client.ID, Rating: 5, Comment: "sharp fade",
	})
	require.NoError(t, err)

	_, err = addReview.Execute(ctx, AddReviewInput{
		BarberID: barber.ID, ClientID: client.ID, Rating: 3,
	})
	require.NoError(t, err)

	updated, err := f.store.GetBarberByID(ctx, barber.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.Rating)
	assert.Equal(t, 2, updated.ReviewCount)
}

func TestAverageRatingRoundsHalfAwayFromZero(t *testing.T) {
	reviews := []models.Review{{Rating: 4}, {Rating: 3}} // mean 3.5
	assert.Equal(t, 3.5, averageRating(reviews))

	reviews = []models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}} // mean 4.333...
	assert.Equal(t, 4.3, averageRating(reviews))

	reviews = []models.Review{{Rating: 5}, {Rating: 5}, {Rating: 4}} // mean 4.666...
	assert.Equal(t, 4.7, averageRating(reviews))

	assert.Equal(t, 0.0, averageRating(nil))
}

// ======================================================
// DISCOVERY
// ======================================================

func TestBarbersNearFiltersAndOrders(t *testing.T) {
	f := setup(t)

	near := f.seedBarber(t, "near@x.com", -33.9180, 18.4231)
	nearer := f.seedBarber(t, "nearer@x.com", -33.9249, 18.4241)
	f.seedBarber(t, "joburg@x.com", -26.2041, 28.0473)

	origin := &geo.Point{Lat: -33.9249, Lng: 18.4241}
	discover := NewDiscover(f.repo)

	matches, err := discover.BarbersNear(context.Background(), origin, 10)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, nearer.ID, matches[0].ID)
	assert.Equal(t, near.ID, matches[1].ID)
	assert.InDelta(t, 0.77, matches[1].DistanceKm, 0.05)
}

func TestBarbersNearWithoutOriginOrdersByRating(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	low := f.seedBarber(t, "low@x.com", -33.9180, 18.4231)
	high := f.seedBarber(t, "high@x.com", -33.9200, 18.4250)
	require.NoError(t, f.repo.SetBarberRating(ctx, low.ID, 3.2, 5))
	require.NoError(t, f.repo.SetBarberRating(ctx, high.ID, 4.8, 12))

	matches, err := NewDiscover(f.repo).BarbersNear(ctx, nil, 0)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, high.ID, matches[0].ID)
	assert.Equal(t, -1.0, matches[0].DistanceKm)
}

func TestRentalsNearOnlyAvailable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	lat, lng := -33.9180, 18.4231
	_, err := f.store.CreateRental(ctx, &models.Rental{
		BarberID: "b1", Title: "Open chair", Price: 200,
		PriceType: models.RentalPerDay, Status: models.RentalAvailable,
		Lat: &lat, Lng: &lng,
	})
	require.NoError(t, err)
	_, err = f.store.CreateRental(ctx, &models.Rental{
		BarberID: "b1", Title: "Taken chair", Price: 250,
		PriceType: models.RentalPerDay, Status: models.RentalRented,
		Lat: &lat, Lng: &lng,
	})
	require.NoError(t, err)

	matches, err := NewDiscover(f.repo).RentalsNear(ctx, &geo.Point{Lat: -33.9249, Lng: 18.4241}, 10)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "Open chair", matches[0].Title)
}

// ======================================================
// RECONCILE
// ======================================================

func TestSweepRecreatesMissingBooking(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	barber := f.seedBarber(t, "fix@x.com", -33.9180, 18.4231)
	req := f.openRequest(t, nil)

	// Simulate an accept that crashed after the status write: the
	// request is accepted but no booking row exists.
	now := time.Now()
	require.NoError(t, f.db.Model(&models.BookingRequest{}).
		Where("id = ?", req.ID).
		Updates(map[string]any{
			"status": "accepted", "accepted_by": barber.ID, "accepted_at": now,
		}).Error)

	NewReconcile(f.repo, f.store, f.audit).Sweep(ctx)

	booking, err := f.store.GetBookingByRequestID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", booking.Status)
	assert.Equal(t, barber.ID, booking.BarberID)

	// A second sweep leaves it alone.
	NewReconcile(f.repo, f.store, f.audit).Sweep(ctx)
	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Where("request_id = ?", req.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSweepExpiresStaleRequests(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	req := f.openRequest(t, nil)
	fresh := f.openRequest(t, nil)

	stale := time.Now().Add(-3 * 24 * time.Hour)
	require.NoError(t, f.db.Model(&models.BookingRequest{}).
		Where("id = ?", req.ID).
		Update("created_at", stale).Error)

	NewReconcile(f.repo, f.store, f.audit).Sweep(ctx)

	expired, err := f.store.GetBookingRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", expired.Status)

	kept, err := f.store.GetBookingRequestByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", kept.Status)
}
