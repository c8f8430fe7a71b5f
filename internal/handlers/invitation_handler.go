package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/mailer"
	"github.com/legwalet/le-barber/internal/middleware"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/store"
	"github.com/legwalet/le-barber/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type InvitationHandler struct {
	store  *store.Store
	mailer *mailer.Mailer
}

func NewInvitationHandler(st *store.Store, m *mailer.Mailer) *InvitationHandler {
	return &InvitationHandler{
		store:  st,
		mailer: m,
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateInvitationRequest struct {
	InviteeEmail string `json:"inviteeEmail" binding:"required,email"`
}

// Create issues a referral code and mails it to the invitee.
func (h *InvitationHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	inviter, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid invitation payload")
		return
	}

	// Codes are single use; do not burn one on an address that can never
	// receive mail.
	if !validators.IsEmailDomainValid(req.InviteeEmail) {
		httperr.BadRequest(c, "invalid_request", "invitee email domain does not resolve")
		return
	}

	inv := &models.Invitation{
		InviterID:    inviter.ID,
		InviterName:  inviter.Name,
		InviterEmail: inviter.Email,
		InviteeEmail: req.InviteeEmail,
	}
	inv, err = h.store.CreateInvitation(c.Request.Context(), inv)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.mailer.SendAsync(mailer.TemplateBarberInvitation, inv.InviteeEmail, map[string]string{
		"inviter_name":  inv.InviterName,
		"inviter_email": inv.InviterEmail,
		"code":          inv.Code,
		"expires_at":    inv.ExpiresAt.Format("2 January 2006"),
	})

	httpresp.Created(c, inv)
}

// ======================================================
// LIST / VALIDATE
// ======================================================

func (h *InvitationHandler) ListMine(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	invitations, err := h.store.GetInvitationsByInviter(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, invitations)
}

// Validate checks a referral code during barber signup.
func (h *InvitationHandler) Validate(c *gin.Context) {
	inv, err := h.store.GetInvitationByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	valid := inv.Status == models.InvitationPending && inv.ExpiresAt.After(time.Now())
	httpresp.OK(c, gin.H{
		"valid":       valid,
		"inviterName": inv.InviterName,
		"status":      inv.Status,
	})
}
