package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/geo"
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

type BarberHandler struct {
	store    *store.Store
	identity *identity.Manager
	discover *matching.Discover
}

func NewBarberHandler(st *store.Store, idm *identity.Manager, discover *matching.Discover) *BarberHandler {
	return &BarberHandler{
		store:    st,
		identity: idm,
		discover: discover,
	}
}

// ======================================================
// DISCOVERY
// ======================================================

// List searches barbers near ?lat=&lng=&radius=. Without coordinates the
// whole roster comes back ordered by rating.
func (h *BarberHandler) List(c *gin.Context) {
	origin, radius := parseOrigin(c)

	matches, err := h.discover.BarbersNear(c.Request.Context(), origin, radius)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, matches)
}

func (h *BarberHandler) Get(c *gin.Context) {
	barber, err := h.store.GetBarberByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, barber)
}

func (h *BarberHandler) Reviews(c *gin.Context) {
	reviews, err := h.store.GetReviewsByBarber(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, reviews)
}

// ======================================================
// PROFILE UPDATES (owner only)
// ======================================================

type UpdateBarberRequest struct {
	Name          *string                     `json:"name"`
	BusinessName  *string                     `json:"businessName"`
	Phone         *string                     `json:"phone"`
	Lat           *float64                    `json:"lat"`
	Lng           *float64                    `json:"lng"`
	Address       *string                     `json:"address"`
	Services      *[]models.ServiceOffering   `json:"services"`
	BusinessHours *map[string]models.DayHours `json:"businessHours"`
	Portfolio     *[]string                   `json:"portfolio"`
}

func (h *BarberHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.identity.BarberProfileFor(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if profile == nil || profile.ID != c.Param("id") {
		httperr.Forbidden(c, "forbidden", "not the owner of this profile")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid profile payload")
		return
	}

	patch := store.BarberPatch{
		Name:          req.Name,
		BusinessName:  req.BusinessName,
		Phone:         req.Phone,
		Lat:           req.Lat,
		Lng:           req.Lng,
		Address:       req.Address,
		Services:      req.Services,
		BusinessHours: req.BusinessHours,
		Portfolio:     req.Portfolio,
	}

	updated, err := h.store.UpdateBarber(c.Request.Context(), profile.ID, patch)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, updated)
}

// ======================================================
// HELPERS
// ======================================================

func parseOrigin(c *gin.Context) (*geo.Point, float64) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	radius, _ := strconv.ParseFloat(c.Query("radius"), 64)

	if latStr == "" || lngStr == "" {
		return nil, radius
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		return nil, radius
	}
	return &geo.Point{Lat: lat, Lng: lng}, radius
}
