package entity

import (
	"time"

	"github.com/google/uuid"
)

// FileRecord is a stored upload retrievable by its pin.
// Records are created once and never updated.
type FileRecord struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Pin         string    `gorm:"size:12;uniqueIndex"`
	Filename    string
	Data        []byte `gorm:"type:bytea"`
	OwnerChatId int64  `gorm:"index"`
	CreatedAt   time.Time
}
