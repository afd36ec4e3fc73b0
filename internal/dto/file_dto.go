package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileResponse struct {
	Id               uuid.UUID `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	StoredFilename   string    `json:"stored_filename"`
	UploadedAt       time.Time `json:"uploaded_at"`
	Processed        bool      `json:"processed"`
}

type UploadFilesResponse struct {
	Uploaded []*FileResponse `json:"uploaded"`
}

type ProcessFilesResponse struct {
	Processed int            `json:"processed"`
	Failures  []*FileFailure `json:"failures"`
}

type FileFailure struct {
	OriginalFilename string `json:"original_filename"`
	Reason           string `json:"reason"`
}

// PublishProcessFileMessage is the payload on the file-processing topic.
type PublishProcessFileMessage struct {
	FileId uuid.UUID `json:"file_id"`
}
