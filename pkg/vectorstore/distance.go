package vectorstore

import (
	"math"

	"notebookrag/pkg/apperror"
)

// cosineDistance returns 1 - cos(a, b). Lower means closer. Embeddings are
// stored normalized, but the magnitudes are recomputed here so the result
// stays correct for providers that skip normalization.
func cosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, apperror.Validation("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1, nil
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)), nil
}
