package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/legwalet/le-barber/internal/audit"
	"github.com/legwalet/le-barber/internal/config"
	"github.com/legwalet/le-barber/internal/geocode"
	"github.com/legwalet/le-barber/internal/handlers"
	"github.com/legwalet/le-barber/internal/identity"
	infraRepo "github.com/legwalet/le-barber/internal/infra/repository"
	"github.com/legwalet/le-barber/internal/mailer"
	"github.com/legwalet/le-barber/internal/media"
	"github.com/legwalet/le-barber/internal/middleware"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/presence"
	"github.com/legwalet/le-barber/internal/session"
	"github.com/legwalet/le-barber/internal/store"
	ucMatching "github.com/legwalet/le-barber/internal/usecase/matching"
)

// Deps carries the long-lived collaborators main wires up before the
// router is built.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions session.Store
	Hub      *presence.Hub
	Audit    *audit.Dispatcher
	Media    media.Storage
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	st := store.New(d.DB)
	matchingRepo := infraRepo.NewMatchingGormRepository(d.DB)

	auditLogger := audit.New(d.DB)

	mail := mailer.New(d.Cfg)
	geocoder := geocode.New(d.Cfg.MapQuestKey)
	uploader := media.NewUploader(d.Media)

	idm := identity.NewManager(st, d.Sessions)
	tracker := presence.NewTracker(st, d.Hub, d.Cfg.PresenceStale())

	// ======================================================
	// MATCHING USE CASES
	// ======================================================
	createRequestUC := ucMatching.NewCreateRequest(matchingRepo, d.Audit, mail, d.Hub)
	acceptRequestUC := ucMatching.NewAcceptRequest(matchingRepo, d.Audit, mail, d.Hub)
	declineRequestUC := ucMatching.NewDeclineRequest(matchingRepo, d.Audit)
	addReviewUC := ucMatching.NewAddReview(matchingRepo, d.Audit)
	discoverUC := ucMatching.NewDiscover(matchingRepo)
	transitionBookingUC := ucMatching.NewTransitionBooking(matchingRepo, d.Audit, d.Hub)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(geocoder)
	authHandler := handlers.NewAuthHandler(d.Cfg, idm, tracker)
	meHandler := handlers.NewMeHandler(idm, st)
	barberHandler := handlers.NewBarberHandler(st, idm, discoverUC)
	requestHandler := handlers.NewRequestHandler(st, idm, createRequestUC, acceptRequestUC, declineRequestUC)
	bookingHandler := handlers.NewBookingHandler(st, idm, transitionBookingUC)
	rentalHandler := handlers.NewRentalHandler(st, idm, discoverUC, mail)
	reviewHandler := handlers.NewReviewHandler(addReviewUC)
	invitationHandler := handlers.NewInvitationHandler(st, mail)
	adminHandler := handlers.NewAdminHandler(st, idm, auditLogger)
	uploadHandler := handlers.NewUploadHandler(uploader)
	presenceHandler := handlers.NewPresenceHandler(d.Hub, tracker)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/health", publicHandler.Health)
		api.GET("/geocode/reverse", publicHandler.ReverseGeocode)

		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/reviews", barberHandler.Reviews)

		api.GET("/rentals", rentalHandler.List)
		api.GET("/rentals/:id", rentalHandler.Get)

		api.GET("/invitations/validate/:code", invitationHandler.Validate)

		// Quick bookings work signed-out; a valid token links the
		// request to the account.
		api.POST("/requests",
			middleware.OptionalAuth(d.Cfg),
			requestHandler.Create,
		)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/google", authHandler.GoogleSignIn)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Cfg))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.Get)
			secured.GET("/me/bookings", meHandler.Bookings)
			secured.GET("/me/requests", meHandler.Requests)
			secured.GET("/me/reviews", meHandler.Reviews)
			secured.GET("/me/rentals", meHandler.Rentals)
			secured.GET("/me/barber", meHandler.BarberProfile)
			secured.PUT("/me/preferences", meHandler.UpdatePreferences)

			secured.PATCH("/barbers/:id", barberHandler.Update)

			secured.GET("/requests/pending", requestHandler.ListPending)
			secured.GET("/requests/:id", requestHandler.Get)
			secured.POST("/requests/:id/accept", requestHandler.Accept)
			secured.POST("/requests/:id/decline", requestHandler.Decline)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id", bookingHandler.Update)
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			secured.POST("/rentals", rentalHandler.Create)
			secured.PATCH("/rentals/:id", rentalHandler.Update)
			secured.DELETE("/rentals/:id", rentalHandler.Delete)

			secured.POST("/reviews",
				middleware.RequireRole(string(models.UserTypeClient)),
				reviewHandler.Create,
			)

			secured.POST("/invitations", invitationHandler.Create)
			secured.GET("/invitations", invitationHandler.ListMine)

			secured.POST("/uploads", uploadHandler.Upload)

			secured.GET("/presence/ws", presenceHandler.Connect)
			secured.GET("/presence/clients", presenceHandler.OnlineClients)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.PATCH("/users/:id/active", adminHandler.SetActive)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)

				admin.GET("/barbers", adminHandler.ListBarbers)
				admin.GET("/bookings", adminHandler.ListBookings)
				admin.GET("/requests", adminHandler.ListRequests)

				admin.GET("/export", adminHandler.Export)
				admin.POST("/import", adminHandler.Import)
				admin.POST("/reset", adminHandler.Reset)

				admin.GET("/audit-logs", adminHandler.AuditLogs)
			}
		}
	}
}
