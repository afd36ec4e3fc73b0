package entity

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id               uuid.UUID
	NotebookId       uuid.UUID
	OriginalFilename string
	StoredFilename   string
	UploadedAt       time.Time
	Processed        bool
}
