package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/identity"
	"github.com/legwalet/le-barber/internal/middleware"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/store"
	matching "github.com/legwalet/le-barber/internal/usecase/matching"
)

// ======================================================
// HANDLER
// ======================================================

type RequestHandler struct {
	store    *store.Store
	identity *identity.Manager
	create   *matching.CreateRequest
	accept   *matching.AcceptRequest
	decline  *matching.DeclineRequest
}

func NewRequestHandler(
	st *store.Store,
	idm *identity.Manager,
	create *matching.CreateRequest,
	accept *matching.AcceptRequest,
	decline *matching.DeclineRequest,
) *RequestHandler {
	return &RequestHandler{
		store:    st,
		identity: idm,
		create:   create,
		accept:   accept,
		decline:  decline,
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateRequestBody struct {
	ClientName    string   `json:"clientName" binding:"required"`
	ClientEmail   string   `json:"clientEmail"`
	ClientPhone   string   `json:"clientPhone"`
	Service       string   `json:"service" binding:"required"`
	PreferredDate string   `json:"preferredDate"`
	PreferredTime string   `json:"preferredTime"`
	MaxPrice      float64  `json:"maxPrice"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Notes         string   `json:"notes"`
}

// Create opens a request. Signed-in clients get it linked to their
// account; anonymous quick bookings ride on the contact fields alone.
func (h *RequestHandler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request payload")
		return
	}

	var clientID *string
	if id := c.GetString(middleware.ContextUserID); id != "" {
		clientID = &id
	}

	req, err := h.create.Execute(c.Request.Context(), matching.CreateRequestInput{
		ClientID:      clientID,
		ClientName:    body.ClientName,
		ClientEmail:   body.ClientEmail,
		ClientPhone:   body.ClientPhone,
		Service:       body.Service,
		PreferredDate: body.PreferredDate,
		PreferredTime: body.PreferredTime,
		MaxPrice:      body.MaxPrice,
		Lat:           body.Lat,
		Lng:           body.Lng,
		Notes:         body.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, req)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *RequestHandler) ListPending(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		requests []models.BookingRequest
		err      error
	)
	if raw := c.Query("min_budget"); raw != "" {
		price, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeValidation))
			return
		}
		requests, err = h.store.GetRequestsWithBudgetAtLeast(ctx, price)
	} else {
		requests, err = h.store.GetRequestsByStatus(ctx, "pending")
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, requests)
}

func (h *RequestHandler) Get(c *gin.Context) {
	req, err := h.store.GetBookingRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, req)
}

// ======================================================
// ACCEPT / DECLINE
// ======================================================

func (h *RequestHandler) Accept(c *gin.Context) {
	profile, ok := h.requireBarber(c)
	if !ok {
		return
	}

	booking, err := h.accept.Execute(c.Request.Context(), c.Param("id"), profile.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if booking.ClientID != "" {
		if herr := h.store.AppendBookingHistory(c.Request.Context(), booking.ClientID, booking.ID); herr != nil {
			log.Printf("failed to record booking %s on client %s history: %v", booking.ID, booking.ClientID, herr)
		}
	}
	httpresp.Created(c, booking)
}

func (h *RequestHandler) Decline(c *gin.Context) {
	profile, ok := h.requireBarber(c)
	if !ok {
		return
	}

	req, err := h.decline.Execute(c.Request.Context(), c.Param("id"), profile.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, req)
}

// ======================================================
// HELPERS
// ======================================================

func (h *RequestHandler) requireBarber(c *gin.Context) (*models.BarberProfile, bool) {
	userID := c.GetString(middleware.ContextUserID)

	p, err := h.identity.BarberProfileFor(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	if p == nil {
		httperr.Forbidden(c, "forbidden", "barber profile required")
		return nil, false
	}
	return p, true
}
