package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/audit"
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

type AdminHandler struct {
	store    *store.Store
	identity *identity.Manager
	audit    *audit.Logger
}

func NewAdminHandler(st *store.Store, idm *identity.Manager, auditLog *audit.Logger) *AdminHandler {
	return &AdminHandler{
		store:    st,
		identity: idm,
		audit:    auditLog,
	}
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if userType := c.Query("type"); userType != "" {
		users, err := h.store.GetUsersByType(c.Request.Context(), models.UserType(userType))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.List(c, users)
		return
	}

	users, err := h.store.GetAllUsers(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, users)
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *AdminHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "isActive is required")
		return
	}

	user, err := h.identity.Deactivate(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, user)
}

// DeleteUser removes the account, its barber profile, and the rows
// they own: rentals, reviews, and still-pending bookings. The cleanup
// is best effort; finished bookings keep the deleted ids and readers
// treat them as unresolved references.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID := c.GetString(middleware.ContextUserID)
	targetID := c.Param("id")

	profile, err := h.identity.BarberProfileFor(c.Request.Context(), targetID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	barberID := ""
	if profile != nil {
		barberID = profile.ID
		if err := h.store.DeleteBarberProfile(c.Request.Context(), profile.ID); err != nil {
			httperr.FromError(c, err)
			return
		}
	}

	if err := h.store.DeleteUser(c.Request.Context(), targetID); err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.store.PurgeUserData(c.Request.Context(), targetID, barberID); err != nil {
		log.Printf("partial cleanup deleting user %s: %v", targetID, err)
	}

	h.audit.Log(&adminID, "user_deleted", "user", targetID, nil)
	httpresp.NoContent(c)
}

func (h *AdminHandler) ListBarbers(c *gin.Context) {
	profiles, err := h.store.GetAllBarbers(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, profiles)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		bookings, err := h.store.GetBookingsByStatus(c.Request.Context(), status)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		httpresp.List(c, bookings)
		return
	}

	bookings, err := h.store.GetAllBookings(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, bookings)
}

// ======================================================
// REQUESTS
// ======================================================

func (h *AdminHandler) ListRequests(c *gin.Context) {
	requests, err := h.store.GetAllBookingRequests(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, requests)
}

// ======================================================
// EXPORT / IMPORT
// ======================================================

func (h *AdminHandler) Export(c *gin.Context) {
	snap, err := h.store.ExportAll(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, snap)
}

// Import replaces every collection with the snapshot's contents in one
// transaction.
func (h *AdminHandler) Import(c *gin.Context) {
	adminID := c.GetString(middleware.ContextUserID)

	var snap store.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid snapshot payload")
		return
	}

	if err := h.store.ImportAll(c.Request.Context(), &snap); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Log(&adminID, "data_imported", "snapshot", "", nil)
	httpresp.Message(c, "imported")
}

// Reset empties every collection. Export first; there is no undo.
func (h *AdminHandler) Reset(c *gin.Context) {
	adminID := c.GetString(middleware.ContextUserID)

	if err := h.store.Clear(c.Request.Context()); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Log(&adminID, "store_cleared", "snapshot", "", nil)
	httpresp.Message(c, "cleared")
}

// ======================================================
// AUDIT LOG
// ======================================================

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.audit.Recent(limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, logs)
}
