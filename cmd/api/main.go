package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/legwalet/le-barber/internal/audit"
	"github.com/legwalet/le-barber/internal/config"
	dbpkg "github.com/legwalet/le-barber/internal/db"
	infraRepo "github.com/legwalet/le-barber/internal/infra/repository"
	"github.com/legwalet/le-barber/internal/media"
	"github.com/legwalet/le-barber/internal/presence"
	"github.com/legwalet/le-barber/internal/routes"
	"github.com/legwalet/le-barber/internal/session"
	"github.com/legwalet/le-barber/internal/store"
	ucMatching "github.com/legwalet/le-barber/internal/usecase/matching"
)

const reconcileInterval = 5 * time.Minute

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background workers share the signal-scoped context.
	auditDispatcher := audit.NewDispatcher(ctx, audit.New(db))

	hub := presence.NewHub()
	go hub.Run(ctx)

	reconcile := ucMatching.NewReconcile(
		infraRepo.NewMatchingGormRepository(db),
		store.New(db),
		auditDispatcher,
	)
	go reconcile.Run(ctx, reconcileInterval)

	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions = session.NewRedisStore(cfg)
	} else {
		sessions = session.NewMemoryStore()
	}

	var mediaStorage media.Storage
	if cfg.AWSS3Bucket != "" {
		mediaStorage = media.NewS3Storage(cfg)
	} else {
		mediaStorage = media.NewMemoryStorage()
	}

	r := gin.Default()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Sessions: sessions,
		Hub:      hub,
		Audit:    auditDispatcher,
		Media:    mediaStorage,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
