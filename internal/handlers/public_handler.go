package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/geocode"
	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	geocoder *geocode.Client
}

func NewPublicHandler(geocoder *geocode.Client) *PublicHandler {
	return &PublicHandler{geocoder: geocoder}
}

// ======================================================
// HEALTH
// ======================================================

func (h *PublicHandler) Health(c *gin.Context) {
	httpresp.OK(c, gin.H{"status": "ok"})
}

// ======================================================
// REVERSE GEOCODE
// ======================================================

// ReverseGeocode turns coordinates into a display address. The geocoder
// never fails; unresolvable coordinates come back formatted as-is.
func (h *PublicHandler) ReverseGeocode(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		httperr.BadRequest(c, "invalid_request", "lat and lng are required")
		return
	}

	address := h.geocoder.ReverseGeocode(c.Request.Context(), lat, lng)
	httpresp.OK(c, gin.H{"address": address})
}
