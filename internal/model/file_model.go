package model

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	NotebookId       uuid.UUID `gorm:"type:uuid;not null;index"`
	OriginalFilename string    `gorm:"type:varchar(255);not null"`
	StoredFilename   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	UploadedAt       time.Time `gorm:"autoCreateTime"`
	Processed        bool      `gorm:"not null;default:false"`
}

func (File) TableName() string {
	return "files"
}
