package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/identity"
	"github.com/legwalet/le-barber/internal/middleware"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/store"
)

// ======================================================
// HANDLER
// ======================================================

type MeHandler struct {
	identity *identity.Manager
	store    *store.Store
}

func NewMeHandler(idm *identity.Manager, st *store.Store) *MeHandler {
	return &MeHandler{
		identity: idm,
		store:    st,
	}
}

// ======================================================
// CURRENT USER
// ======================================================

// Get re-resolves the session's user record. A token pointing at a
// deleted user reads as signed out, not as an error.
func (h *MeHandler) Get(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)

	user, err := h.identity.ResolveSession(c.Request.Context(), token)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if user == nil {
		httperr.Unauthorized(c, "session_expired", "session no longer valid")
		return
	}
	httpresp.OK(c, user)
}

func (h *MeHandler) Bookings(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	bookings, err := h.identity.BookingsFor(c.Request.Context(), user)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, bookings)
}

// Requests lists booking requests the signed-in client has opened.
func (h *MeHandler) Requests(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	requests, err := h.store.GetRequestsByClient(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, requests)
}

// Rentals lists the signed-in barber's own listings, whatever their
// status.
func (h *MeHandler) Rentals(c *gin.Context) {
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

	rentals, err := h.store.GetRentalsByBarber(c.Request.Context(), profile.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rentals)
}

// Reviews lists reviews the signed-in client has written.
func (h *MeHandler) Reviews(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	reviews, err := h.store.GetReviewsByClient(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, reviews)
}

func (h *MeHandler) BarberProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.identity.BarberProfileFor(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if profile == nil {
		httperr.NotFound(c, httperr.CodeNotFound, "no barber profile for this account")
		return
	}
	httpresp.OK(c, profile)
}

// ======================================================
// PREFERENCES
// ======================================================

type UpdatePreferencesRequest struct {
	PreferredServices []string `json:"preferredServices"`
	MaxDistance       float64  `json:"maxDistance"`
	PriceRange        string   `json:"priceRange"`
}

func (h *MeHandler) UpdatePreferences(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid preferences payload")
		return
	}

	prefs := models.ClientPreferences{
		PreferredServices: req.PreferredServices,
		MaxDistanceKm:     req.MaxDistance,
		PriceRange:        req.PriceRange,
	}
	user, err := h.store.UpdateUser(c.Request.Context(), userID, store.UserPatch{
		Preferences: &prefs,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, user)
}
