package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DownloadEvent marks one completed download of a file. Rows are
// append-only and created only inside the download transaction.
type DownloadEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileID    uint      `gorm:"index;not null" json:"file_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *DownloadEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
