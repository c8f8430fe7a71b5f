package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

func TestCanResolveOnlyFromPending(t *testing.T) {
	assert.NoError(t, CanResolve(StatusPending))

	for _, s := range []Status{StatusAccepted, StatusDeclined, StatusExpired} {
		err := CanResolve(s)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyResolved),
			"resolving from %s should be already_resolved", s)
	}
}

func TestAcceptStampsRequest(t *testing.T) {
	req := &models.BookingRequest{Status: string(StatusPending)}
	now := time.Now()

	assert.NoError(t, Accept(req, "barber-1", now))
	assert.Equal(t, "accepted", req.Status)
	assert.Equal(t, "barber-1", req.AcceptedBy)
	assert.Equal(t, now, *req.AcceptedAt)
}

func TestDeclineStampsRequest(t *testing.T) {
	req := &models.BookingRequest{Status: string(StatusPending)}
	now := time.Now()

	assert.NoError(t, Decline(req, "barber-2", now))
	assert.Equal(t, "declined", req.Status)
	assert.Equal(t, "barber-2", req.DeclinedBy)
	assert.Equal(t, now, *req.DeclinedAt)
}

func TestExpireOnlyTouchesPending(t *testing.T) {
	req := &models.BookingRequest{Status: string(StatusPending)}

	assert.NoError(t, Expire(req))
	assert.Equal(t, "expired", req.Status)

	resolved := &models.BookingRequest{Status: string(StatusAccepted)}
	err := Expire(resolved)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyResolved))
	assert.Equal(t, "accepted", resolved.Status)
}

func TestSecondResolutionFails(t *testing.T) {
	req := &models.BookingRequest{Status: string(StatusPending)}
	now := time.Now()

	assert.NoError(t, Decline(req, "barber-a", now))

	err := Accept(req, "barber-b", now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyResolved))
	assert.Equal(t, "declined", req.Status)
	assert.Empty(t, req.AcceptedBy)
}

func TestBookingFromRequestCopiesFieldsVerbatim(t *testing.T) {
	clientID := "client-9"
	req := &models.BookingRequest{
		ID:            "req-1",
		ClientID:      &clientID,
		Service:       "Haircut",
		PreferredDate: "2026-09-10",
		PreferredTime: "14:30",
		MaxPrice:      150,
		Notes:         "fade please",
	}

	b := BookingFromRequest(req, "barber-1")

	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, "req-1", b.RequestID)
	assert.Equal(t, "client-9", b.ClientID)
	assert.Equal(t, "barber-1", b.BarberID)
	assert.Equal(t, "Haircut", b.Service)
	assert.Equal(t, "2026-09-10", b.Date)
	assert.Equal(t, "14:30", b.Time)
	assert.Equal(t, 150.0, b.Price)
	assert.Equal(t, "fade please", b.Notes)
}

func TestBookingFromAnonymousRequest(t *testing.T) {
	req := &models.BookingRequest{ID: "req-2", Service: "Shave"}

	b := BookingFromRequest(req, "barber-1")
	assert.Empty(t, b.ClientID)
	assert.Equal(t, "confirmed", b.Status)
}
