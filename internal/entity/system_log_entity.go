package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is one audit trail row, written by the audit consumer for
// every bot event that crosses the in-process bus.
type SystemLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Level     string
	Module    string
	Message   string
	Details   datatypes.JSON
	CreatedAt time.Time
}
