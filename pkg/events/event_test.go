package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotebookCreated(t *testing.T) {
	event := NotebookCreated("research")

	assert.Equal(t, "notebook.created", event.EventType())
	assert.Equal(t, "research", event.Payload()["notebook"])
	assert.False(t, event.Timestamp().IsZero())
}

func TestFileProcessedCarriesIngestionDetails(t *testing.T) {
	event := FileProcessed("research", "notes.txt", 12)

	assert.Equal(t, "notebook.file.processed", event.EventType())
	assert.Equal(t, "research", event.Payload()["notebook"])
	assert.Equal(t, "notes.txt", event.Payload()["file"])
	assert.Equal(t, 12, event.Payload()["chunks"])
}
