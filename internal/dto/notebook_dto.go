package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

type CreateNotebookResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type GetAllNotebookResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	FileCount int        `json:"file_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ShowNotebookResponse struct {
	Id        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
	Files     []*FileResponse `json:"files"`
}
