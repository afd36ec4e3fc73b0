package embedding

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct{}

func (countingProvider) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (countingProvider) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func TestSharedInitializesExactlyOnce(t *testing.T) {
	var builds atomic.Int32
	shared := NewShared(func() (Provider, error) {
		builds.Add(1)
		return countingProvider{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := shared.EmbedQuery(context.Background(), "q")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
}

func TestSharedPropagatesBuildError(t *testing.T) {
	shared := NewShared(func() (Provider, error) {
		return nil, assert.AnError
	})

	_, err := shared.EmbedQuery(context.Background(), "q")
	require.Error(t, err)
	_, err = shared.EmbedDocuments(context.Background(), []string{"d"})
	require.Error(t, err)
}

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
	}{
		{"simple", []float32{3, 4}},
		{"already unit", []float32{1, 0, 0}},
		{"negative components", []float32{-2, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := normalizeVector(tt.in)
			var mag float64
			for _, v := range out {
				mag += float64(v) * float64(v)
			}
			assert.InDelta(t, 1.0, math.Sqrt(mag), 1e-6)
		})
	}
}

func TestNormalizeZeroVectorUnchanged(t *testing.T) {
	out := normalizeVector([]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0}, out)
}
