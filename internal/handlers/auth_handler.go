package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/config"
	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/identity"
	"github.com/legwalet/le-barber/internal/middleware"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/presence"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	cfg      *config.Config
	identity *identity.Manager
	tracker  *presence.Tracker
}

func NewAuthHandler(cfg *config.Config, idm *identity.Manager, tracker *presence.Tracker) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		identity: idm,
		tracker:  tracker,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	UserType string `json:"userType" binding:"required,oneof=client barber"`

	BusinessName   string                   `json:"businessName"`
	Lat            *float64                 `json:"lat"`
	Lng            *float64                 `json:"lng"`
	Address        string                   `json:"address"`
	Services       []models.ServiceOffering `json:"services"`
	InvitationCode string                   `json:"invitationCode"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type GoogleSignInRequest struct {
	SubjectID string `json:"subjectId" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Name      string `json:"name"`
	Picture   string `json:"picture"`
	UserType  string `json:"userType" binding:"required,oneof=client barber"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ======================================================
// REGISTER / LOGIN
// ======================================================

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid signup payload")
		return
	}

	user, err := h.identity.RegisterManually(c.Request.Context(), identity.ManualRegistration{
		Email:          req.Email,
		Name:           req.Name,
		Phone:          req.Phone,
		Password:       req.Password,
		UserType:       models.UserType(req.UserType),
		BusinessName:   req.BusinessName,
		Lat:            req.Lat,
		Lng:            req.Lng,
		Address:        req.Address,
		Services:       req.Services,
		InvitationCode: req.InvitationCode,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.startSession(c, user, true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid login payload")
		return
	}

	user, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.startSession(c, user, false)
}

// GoogleSignIn trusts the frontend's verified OAuth claim and signs the
// user in, creating the account on first contact.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid sign-in payload")
		return
	}

	user, err := h.identity.RegisterWithCredential(c.Request.Context(), identity.Claim{
		SubjectID: req.SubjectID,
		Email:     req.Email,
		Name:      req.Name,
		Picture:   req.Picture,
	}, models.UserType(req.UserType))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.startSession(c, user, false)
}

// ======================================================
// LOGOUT
// ======================================================

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	token := c.GetString(middleware.ContextToken)

	if err := h.identity.Logout(c.Request.Context(), token, userID); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Message(c, "logged_out")
}

// ======================================================
// HELPERS
// ======================================================

func (h *AuthHandler) startSession(c *gin.Context, user *models.User, created bool) {
	token, err := middleware.IssueToken(h.cfg, user.ID, string(user.UserType), user.IsAdmin)
	if err != nil {
		httperr.Internal(c, "token_error", "failed to issue token")
		return
	}
	if err := h.identity.StartSession(c.Request.Context(), token, user.ID); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := h.tracker.MarkOnline(c.Request.Context(), user.ID); err != nil {
		httperr.FromError(c, err)
		return
	}

	resp := AuthResponse{Token: token, User: user}
	if created {
		httpresp.Created(c, resp)
		return
	}
	httpresp.OK(c, resp)
}
