package matching

import (
	"context"
	"fmt"
	"log"

	"github.com/legwalet/le-barber/internal/audit"
	bookingdomain "github.com/legwalet/le-barber/internal/domain/booking"
	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/domain/request"
	"github.com/legwalet/le-barber/internal/mailer"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/presence"
	"github.com/legwalet/le-barber/internal/timezone"
)

type AcceptRequest struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	mailer *mailer.Mailer
	hub    *presence.Hub
}

func NewAcceptRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *mailer.Mailer,
	hub *presence.Hub,
) *AcceptRequest {
	return &AcceptRequest{
		repo:   repo,
		audit:  audit,
		mailer: m,
		hub:    hub,
	}
}

func (uc *AcceptRequest) Execute(
	ctx context.Context,
	requestID string,
	barberID string,
) (*models.Booking, error) {

	req, err := uc.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	if err := request.Accept(req, barber.ID, now); err != nil {
		return nil, err
	}

	// Conditional on the row still being pending; a losing racer gets
	// already_resolved here instead of overwriting the winner.
	if err := uc.repo.ResolveRequest(ctx, req); err != nil {
		return nil, err
	}

	booking := request.BookingFromRequest(req, barber.ID)
	if err := uc.repo.CreateBooking(ctx, booking); err != nil {
		// The request is already accepted; the reconcile sweep will
		// recreate the missing booking. Surface the fault regardless.
		log.Printf("accepted request %s but booking creation failed: %v", req.ID, err)
		return nil, fmt.Errorf("create booking for request %s: %w", req.ID, err)
	}

	// Declared hours are advisory; an out-of-hours accept goes through
	// but is worth flagging in the logs.
	if start, serr := bookingdomain.StartsAt(booking); serr == nil {
		hours := barber.BusinessHours.Data()
		if !bookingdomain.WithinBusinessHours(hours, start, booking.DurationMin) {
			log.Printf("request %s accepted outside %s's declared hours", req.ID, barber.ID)
		}
	}

	if req.ClientID != nil {
		if err := uc.repo.SetClientOpenRequest(ctx, *req.ClientID, false); err != nil {
			log.Printf("failed to clear open-request flag for %s: %v", *req.ClientID, err)
		}
	}

	if req.ClientEmail != "" {
		uc.mailer.SendAsync(mailer.TemplateBookingConfirmation, req.ClientEmail, map[string]string{
			"client_name": req.ClientName,
			"barber_name": barber.Name,
			"service":     booking.Service,
			"date":        booking.Date,
			"time":        booking.Time,
			"price":       fmt.Sprintf("%.2f", booking.Price),
		})
	}

	uc.hub.Broadcast(presence.Event{
		Type:    presence.EventRequestClaimed,
		Payload: map[string]string{"requestId": req.ID, "barberId": barber.ID},
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &barber.UserID,
		Action:   "request_accepted",
		Entity:   "booking_request",
		EntityID: req.ID,
	})

	return booking, nil
}
