package matching

import (
	"context"

	"github.com/legwalet/le-barber/internal/audit"
	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/domain/request"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/timezone"
)

type DeclineRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeclineRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeclineRequest {
	return &DeclineRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeclineRequest) Execute(
	ctx context.Context,
	requestID string,
	barberID string,
) (*models.BookingRequest, error) {

	req, err := uc.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	if err := request.Decline(req, barber.ID, now); err != nil {
		return nil, err
	}

	if err := uc.repo.ResolveRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barber.UserID,
		Action:   "request_declined",
		Entity:   "booking_request",
		EntityID: req.ID,
	})

	return req, nil
}
