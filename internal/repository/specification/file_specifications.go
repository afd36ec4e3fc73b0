package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByNotebookID filters files by their owning notebook.
type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

// Unprocessed keeps files that have not been ingested yet.
type Unprocessed struct{}

func (s Unprocessed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("processed = ?", false)
}
