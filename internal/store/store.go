package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/legwalet/le-barber/internal/httperr"
)

// Store is the entity store over the embedded database: durable, indexed
// persistence for the seven marketplace collections. It owns durability and
// indexing only; lifecycle rules live in the domain and use-case layers.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for infrastructure that shares the store
// (audit trail, lifecycle repository).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// notFound converts a gorm miss into the business error the callers match
// on; anything else is a storage fault and passes through untouched.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return err
}
