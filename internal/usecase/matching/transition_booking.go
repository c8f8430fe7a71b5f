package matching

import (
	"context"

	"github.com/legwalet/le-barber/internal/audit"
	"github.com/legwalet/le-barber/internal/domain/booking"
	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/presence"
)

type TransitionBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	hub   *presence.Hub
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	hub *presence.Hub,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
		hub:   hub,
	}
}

// Execute moves a booking along the lifecycle on behalf of its barber.
// Only transitions in the table pass; everything else is
// invalid_transition.
func (uc *TransitionBooking) Execute(
	ctx context.Context,
	bookingID string,
	barberID string,
	to string,
) (*models.Booking, error) {

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForBarber(ctx, bookingID, barber.ID)
	if err != nil {
		return nil, err
	}

	if err := booking.Transition(b, booking.Status(to)); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.hub.Broadcast(presence.Event{
		Type:    presence.EventBookingUpdate,
		Payload: map[string]string{"bookingId": b.ID, "status": b.Status},
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &barber.UserID,
		Action:   "booking_" + b.Status,
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
