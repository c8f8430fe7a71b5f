package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/identity"
	"github.com/legwalet/le-barber/internal/mailer"
	"github.com/legwalet/le-barber/internal/middleware"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/store"
	matching "github.com/legwalet/le-barber/internal/usecase/matching"
)

// ======================================================
// HANDLER
// ======================================================

type RentalHandler struct {
	store    *store.Store
	identity *identity.Manager
	discover *matching.Discover
	mailer   *mailer.Mailer
}

func NewRentalHandler(
	st *store.Store,
	idm *identity.Manager,
	discover *matching.Discover,
	m *mailer.Mailer,
) *RentalHandler {
	return &RentalHandler{
		store:    st,
		identity: idm,
		discover: discover,
		mailer:   m,
	}
}

// ======================================================
// DISCOVERY
// ======================================================

// List searches available rentals near ?lat=&lng=&radius=.
func (h *RentalHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		rentals, err := h.store.GetRentalsByStatus(c.Request.Context(), status)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.List(c, rentals)
		return
	}

	origin, radius := parseOrigin(c)

	matches, err := h.discover.RentalsNear(c.Request.Context(), origin, radius)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, matches)
}

func (h *RentalHandler) Get(c *gin.Context) {
	rental, err := h.store.GetRentalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, rental)
}

// ======================================================
// OWNER CRUD
// ======================================================

type CreateRentalRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	Address     string               `json:"address"`
	Lat         *float64             `json:"lat"`
	Lng         *float64             `json:"lng"`
	Price       float64              `json:"price" binding:"required"`
	PriceType   string               `json:"priceType" binding:"required,oneof=per_day per_week per_month"`
	Amenities   []string             `json:"amenities"`
	Images      []string             `json:"images"`
	ContactInfo models.RentalContact `json:"contactInfo"`
}

func (h *RentalHandler) Create(c *gin.Context) {
	profile, ok := h.requireOwner(c, "")
	if !ok {
		return
	}

	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid rental payload")
		return
	}

	rental := &models.Rental{
		BarberID:    profile.ID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Price:       req.Price,
		PriceType:   req.PriceType,
		Amenities:   datatypes.NewJSONType(req.Amenities),
		Images:      datatypes.NewJSONType(req.Images),
		ContactInfo: datatypes.NewJSONType(req.ContactInfo),
		Status:      models.RentalAvailable,
	}
	rental, err := h.store.CreateRental(c.Request.Context(), rental)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if contact := rental.ContactInfo.Data(); contact.Email != "" {
		h.mailer.SendAsync(mailer.TemplateRentalNotification, contact.Email, map[string]string{
			"barber_name": profile.Name,
			"address":     rental.Address,
			"price":       strconv.FormatFloat(rental.Price, 'f', 2, 64),
			"price_type":  rental.PriceType,
			"description": rental.Description,
		})
	}
	httpresp.Created(c, rental)
}

type UpdateRentalRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Address     *string   `json:"address"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	Price       *float64  `json:"price"`
	PriceType   *string   `json:"priceType"`
	Amenities   *[]string `json:"amenities"`
	Images      *[]string `json:"images"`
	Status      *string   `json:"status"`
}

func (h *RentalHandler) Update(c *gin.Context) {
	rental, err := h.store.GetRentalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if _, ok := h.requireOwner(c, rental.BarberID); !ok {
		return
	}

	var req UpdateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid rental payload")
		return
	}

	updated, err := h.store.UpdateRental(c.Request.Context(), rental.ID, store.RentalPatch{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Price:       req.Price,
		PriceType:   req.PriceType,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Status:      req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, updated)
}

func (h *RentalHandler) Delete(c *gin.Context) {
	rental, err := h.store.GetRentalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if _, ok := h.requireOwner(c, rental.BarberID); !ok {
		return
	}

	if err := h.store.DeleteRental(c.Request.Context(), rental.ID); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// HELPERS
// ======================================================

// requireOwner resolves the caller's barber profile and, when ownerID is
// set, checks it matches.
func (h *RentalHandler) requireOwner(c *gin.Context, ownerID string) (*models.BarberProfile, bool) {
	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.identity.BarberProfileFor(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	if profile == nil || (ownerID != "" && profile.ID != ownerID) {
		httperr.Forbidden(c, "forbidden", "not the owner of this rental")
		return nil, false
	}
	return profile, true
}
