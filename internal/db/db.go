package db

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/legwalet/le-barber/internal/config"
	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

// NewDB opens the entity store. The default is an embedded sqlite file,
// one per install; a postgres URL switches to a networked deployment.
func NewDB(cfg *config.Config) *gorm.DB {
	db, err := open(cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := EnsureSchema(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func open(url string) (*gorm.DB, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return gorm.Open(postgres.Open(url), &gorm.Config{PrepareStmt: true})
	}
	return gorm.Open(sqlite.Open(url), &gorm.Config{})
}

// EnsureSchema migrates the store in place, adding any collections or
// indexes introduced since the persisted schema generation. Downgrades are
// refused: a store written by a newer generation stays untouched.
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SchemaMeta{}); err != nil {
		return fmt.Errorf("migrate schema meta: %w", err)
	}

	var meta models.SchemaMeta
	err := db.First(&meta, 1).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		meta = models.SchemaMeta{ID: 1, Version: models.SchemaVersion}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case meta.Version > models.SchemaVersion:
		log.Printf("store schema is generation %d, this build supports %d",
			meta.Version, models.SchemaVersion)
		return httperr.ErrBusiness(httperr.CodeSchemaDowngrade)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BarberProfile{},
		&models.Booking{},
		&models.Rental{},
		&models.Review{},
		&models.Invitation{},
		&models.BookingRequest{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate collections: %w", err)
	}

	meta.Version = models.SchemaVersion
	return db.Save(&meta).Error
}
