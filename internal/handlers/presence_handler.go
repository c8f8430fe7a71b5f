package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/httpresp"
	"github.com/legwalet/le-barber/internal/middleware"
	"github.com/legwalet/le-barber/internal/presence"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The CORS middleware already fences the HTTP surface; the socket
	// trusts the same origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ======================================================
// HANDLER
// ======================================================

type PresenceHandler struct {
	hub     *presence.Hub
	tracker *presence.Tracker
}

func NewPresenceHandler(hub *presence.Hub, tracker *presence.Tracker) *PresenceHandler {
	return &PresenceHandler{
		hub:     hub,
		tracker: tracker,
	}
}

// ======================================================
// WEBSOCKET
// ======================================================

// Connect upgrades to a websocket and subscribes the caller to the live
// event feed. The user shows as online for the life of the socket.
func (h *PresenceHandler) Connect(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("presence: upgrade failed for %s: %v", userID, err)
		return
	}

	client := presence.NewClient(h.hub, conn, userID)
	client.OnAlive = func() {
		if err := h.tracker.Touch(context.Background(), userID); err != nil {
			log.Printf("presence: touching %s failed: %v", userID, err)
		}
	}
	client.Register()

	if err := h.tracker.MarkOnline(c.Request.Context(), userID); err != nil {
		log.Printf("presence: marking %s online failed: %v", userID, err)
	}

	go client.WritePump()
	go func() {
		client.ReadPump()
		// The request context is gone once the socket closes.
		if err := h.tracker.MarkOffline(context.Background(), userID); err != nil {
			log.Printf("presence: marking %s offline failed: %v", userID, err)
		}
	}()
}

// ======================================================
// ONLINE CLIENTS
// ======================================================

// OnlineClients backs the barber dashboard's live client list.
func (h *PresenceHandler) OnlineClients(c *gin.Context) {
	clients, err := h.tracker.OnlineClients(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, clients)
}
