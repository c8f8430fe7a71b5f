package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/middleware"
	matching "github.com/legwalet/le-barber/internal/usecase/matching"
)

// ======================================================
// HANDLER
// ======================================================

type ReviewHandler struct {
	addReview *matching.AddReview
}

func NewReviewHandler(addReview *matching.AddReview) *ReviewHandler {
	return &ReviewHandler{addReview: addReview}
}

// ======================================================
// CREATE
// ======================================================

type CreateReviewRequest struct {
	BarberID string `json:"barberId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	clientID := c.GetString(middleware.ContextUserID)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid review payload")
		return
	}

	review, err := h.addReview.Execute(c.Request.Context(), matching.AddReviewInput{
		BarberID: req.BarberID,
		ClientID: clientID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, review)
}
