package memory

import (
	"sync"

	"github.com/patrickmn/go-cache"

	"notebookrag/internal/entity"
)

// TranscriptRepository keeps one in-memory chat transcript per notebook.
// Transcripts live for the process lifetime and disappear with it; only
// the vector index and catalog are durable.
type TranscriptRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewTranscriptRepository() *TranscriptRepository {
	return &TranscriptRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Append adds one message to a notebook's transcript, creating the
// transcript on first use.
func (r *TranscriptRepository) Append(notebookName string, message entity.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var transcript []entity.ChatMessage
	if x, found := r.cache.Get(notebookName); found {
		transcript = x.([]entity.ChatMessage)
	}
	transcript = append(transcript, message)
	r.cache.Set(notebookName, transcript, cache.NoExpiration)
}

// Get returns a copy of the transcript in insertion order.
func (r *TranscriptRepository) Get(notebookName string) []entity.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(notebookName)
	if !found {
		return nil
	}
	transcript := x.([]entity.ChatMessage)
	out := make([]entity.ChatMessage, len(transcript))
	copy(out, transcript)
	return out
}

func (r *TranscriptRepository) Delete(notebookName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(notebookName)
}
