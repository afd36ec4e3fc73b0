package embedding

import (
	"context"
	"sync"
)

// Shared wraps a provider behind single-flight lazy initialization. Provider
// construction can be expensive (model warm-up on the serving side), so one
// instance is built per process no matter how many ingestion or retrieval
// goroutines race to first use.
type Shared struct {
	build func() (Provider, error)

	once     sync.Once
	provider Provider
	err      error
}

func NewShared(build func() (Provider, error)) *Shared {
	return &Shared{build: build}
}

func (s *Shared) get() (Provider, error) {
	s.once.Do(func() {
		s.provider, s.err = s.build()
	})
	return s.provider, s.err
}

func (s *Shared) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	p, err := s.get()
	if err != nil {
		return nil, err
	}
	return p.EmbedDocuments(ctx, texts)
}

func (s *Shared) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	p, err := s.get()
	if err != nil {
		return nil, err
	}
	return p.EmbedQuery(ctx, text)
}
