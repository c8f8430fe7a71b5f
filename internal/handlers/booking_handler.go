package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	bookingdomain "github.com/legwalet/le-barber/internal/domain/booking"
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

type BookingHandler struct {
	store      *store.Store
	identity   *identity.Manager
	transition *matching.TransitionBooking
}

func NewBookingHandler(
	st *store.Store,
	idm *identity.Manager,
	transition *matching.TransitionBooking,
) *BookingHandler {
	return &BookingHandler{
		store:      st,
		identity:   idm,
		transition: transition,
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateBookingRequest struct {
	BarberID    string  `json:"barberId" binding:"required"`
	Service     string  `json:"service" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	DurationMin int     `json:"duration"`
	Price       float64 `json:"price" binding:"min=0"`
	Notes       string  `json:"notes"`
}

// Create books a barber directly from their profile page. The booking
// starts pending; the barber confirms or declines it through
// UpdateStatus.
func (h *BookingHandler) Create(c *gin.Context) {
	clientID := c.GetString(middleware.ContextUserID)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid booking payload")
		return
	}

	if _, err := h.store.GetBarberByID(c.Request.Context(), req.BarberID); err != nil {
		httperr.FromError(c, err)
		return
	}

	booking, err := h.store.CreateBooking(c.Request.Context(), &models.Booking{
		ClientID:    clientID,
		BarberID:    req.BarberID,
		Service:     req.Service,
		Date:        req.Date,
		Time:        req.Time,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Notes:       req.Notes,
		Status:      string(bookingdomain.InitialStatus()),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if herr := h.store.AppendBookingHistory(c.Request.Context(), clientID, booking.ID); herr != nil {
		log.Printf("failed to record booking %s on client %s history: %v", booking.ID, clientID, herr)
	}
	httpresp.Created(c, booking)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.store.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, booking)
}

// ======================================================
// DETAILS
// ======================================================

type UpdateBookingRequest struct {
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	DurationMin *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Notes       *string  `json:"notes"`
}

// Update edits slot details and notes on a booking the caller is party
// to. Status changes go through UpdateStatus, never through here.
func (h *BookingHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	booking, err := h.store.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	profile, err := h.identity.BarberProfileFor(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	isBarber := profile != nil && booking.BarberID == profile.ID
	if booking.ClientID != userID && !isBarber {
		httperr.Forbidden(c, "forbidden", "not your booking")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid booking payload")
		return
	}

	updated, err := h.store.UpdateBooking(c.Request.Context(), booking.ID, store.BookingPatch{
		Date:        req.Date,
		Time:        req.Time,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, updated)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

type TransitionBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed declined completed"`
}

// UpdateStatus moves a booking along the lifecycle. Only the barber the
// booking belongs to may drive it.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.identity.BarberProfileFor(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if profile == nil {
		httperr.Forbidden(c, "forbidden", "barber profile required")
		return
	}

	var req TransitionBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid status payload")
		return
	}

	booking, err := h.transition.Execute(c.Request.Context(), c.Param("id"), profile.ID, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, booking)
}
