package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/legwalet/le-barber/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *string,
	action string,
	entity string,
	entityID string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&row).Error
}

// Recent returns the newest entries for the admin console, capped at
// limit.
func (l *Logger) Recent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []models.AuditLog
	err := l.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
