package request

import (
	"time"

	"github.com/legwalet/le-barber/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(req *models.BookingRequest, barberID string, now time.Time) error {
	if err := CanResolve(Status(req.Status)); err != nil {
		return err
	}

	req.Status = string(StatusAccepted)
	req.AcceptedBy = barberID
	req.AcceptedAt = &now
	return nil
}

func Decline(req *models.BookingRequest, barberID string, now time.Time) error {
	if err := CanResolve(Status(req.Status)); err != nil {
		return err
	}

	req.Status = string(StatusDeclined)
	req.DeclinedBy = barberID
	req.DeclinedAt = &now
	return nil
}

func Expire(req *models.BookingRequest) error {
	if err := CanResolve(Status(req.Status)); err != nil {
		return err
	}

	req.Status = string(StatusExpired)
	return nil
}

// BookingFromRequest builds the confirmed booking an accept produces,
// copying service, schedule and client fields verbatim.
func BookingFromRequest(req *models.BookingRequest, barberID string) *models.Booking {
	clientID := ""
	if req.ClientID != nil {
		clientID = *req.ClientID
	}

	return &models.Booking{
		ClientID:  clientID,
		BarberID:  barberID,
		RequestID: req.ID,
		Service:   req.Service,
		Date:      req.PreferredDate,
		Time:      req.PreferredTime,
		Price:     req.MaxPrice,
		Notes:     req.Notes,
		Status:    "confirmed",
	}
}
