package matching

import (
	"context"
	"fmt"

	"github.com/legwalet/le-barber/internal/audit"
	domain "github.com/legwalet/le-barber/internal/domain/matching"
	"github.com/legwalet/le-barber/internal/domain/request"
	"github.com/legwalet/le-barber/internal/geo"
	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/mailer"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/presence"
)

// Barbers within this distance of a new request get notified by mail.
const notifyRadiusKm = 10.0

type CreateRequestInput struct {
	ClientID      *string
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	Service       string
	PreferredDate string
	PreferredTime string
	MaxPrice      float64
	Lat           *float64
	Lng           *float64
	Notes         string
}

type CreateRequest struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	mailer *mailer.Mailer
	hub    *presence.Hub
}

func NewCreateRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *mailer.Mailer,
	hub *presence.Hub,
) *CreateRequest {
	return &CreateRequest{
		repo:   repo,
		audit:  audit,
		mailer: m,
		hub:    hub,
	}
}

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.BookingRequest, error) {

	if in.ClientName == "" || in.Service == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if in.ClientID == nil && in.ClientEmail == "" && in.ClientPhone == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	req := &models.BookingRequest{
		ClientID:      in.ClientID,
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientPhone:   in.ClientPhone,
		Service:       in.Service,
		PreferredDate: in.PreferredDate,
		PreferredTime: in.PreferredTime,
		MaxPrice:      in.MaxPrice,
		Lat:           in.Lat,
		Lng:           in.Lng,
		Notes:         in.Notes,
		Status:        string(request.InitialStatus()),
	}
	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	if in.ClientID != nil {
		if err := uc.repo.SetClientOpenRequest(ctx, *in.ClientID, true); err != nil {
			return nil, err
		}
	}

	uc.notifyNearbyBarbers(ctx, req)

	uc.hub.Broadcast(presence.Event{
		Type:    presence.EventNewRequest,
		Payload: req,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ClientID,
		Action:   "request_created",
		Entity:   "booking_request",
		EntityID: req.ID,
	})

	return req, nil
}

// notifyNearbyBarbers mails barbers within the notify radius. A request
// without coordinates notifies everyone with an email on file.
func (uc *CreateRequest) notifyNearbyBarbers(ctx context.Context, req *models.BookingRequest) {
	barbers, err := uc.repo.ListBarbers(ctx)
	if err != nil {
		return
	}

	origin, hasOrigin := locationOf(req)
	for _, b := range barbers {
		if b.Email == "" {
			continue
		}
		if hasOrigin {
			loc, ok := locationOfBarber(&b)
			if !ok || geo.Between(origin, loc) > notifyRadiusKm {
				continue
			}
		}
		uc.mailer.SendAsync(mailer.TemplateBookingRequest, b.Email, map[string]string{
			"client_name":    req.ClientName,
			"service":        req.Service,
			"preferred_date": req.PreferredDate,
			"preferred_time": req.PreferredTime,
			"max_price":      fmt.Sprintf("%.2f", req.MaxPrice),
			"notes":          req.Notes,
		})
	}
}

func locationOf(req *models.BookingRequest) (geo.Point, bool) {
	lat, lng, ok := req.Location()
	return geo.Point{Lat: lat, Lng: lng}, ok
}

func locationOfBarber(b *models.BarberProfile) (geo.Point, bool) {
	lat, lng, ok := b.Location()
	return geo.Point{Lat: lat, Lng: lng}, ok
}
