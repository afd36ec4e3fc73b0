package embedding

import (
	"context"
	"math"
)

// Task types passed through to providers that distinguish document and
// query embeddings (Gemini does, Ollama ignores them). Both sides of a
// similarity comparison must come from the same provider and model.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// Provider maps text to fixed-length vectors. EmbedDocuments and EmbedQuery
// must use the identical model so distances are comparable at query time.
type Provider interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// normalizeVector scales a vector to unit length. Cosine distance over the
// index assumes normalized vectors (magnitude = 1).
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
