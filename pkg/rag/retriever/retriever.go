package retriever

import (
	"context"

	"notebookrag/pkg/embedding"
	"notebookrag/pkg/vectorstore"
)

const (
	DefaultNResults  = 5
	DefaultThreshold = 0.3
)

// Retriever finds notebook passages relevant to a query. A passage is
// relevant only when its cosine distance to the query is strictly below
// the threshold, so an empty result means nothing in the notebook comes
// close enough to ground an answer.
type Retriever struct {
	store     *vectorstore.Store
	embedder  embedding.Provider
	nResults  int
	threshold float64
}

func New(store *vectorstore.Store, embedder embedding.Provider, nResults int, threshold float64) *Retriever {
	if nResults <= 0 {
		nResults = DefaultNResults
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Retriever{
		store:     store,
		embedder:  embedder,
		nResults:  nResults,
		threshold: threshold,
	}
}

// Retrieve returns the passages of a notebook that clear the similarity
// threshold, most similar first. It fails with a not-found error when the
// notebook has no collection.
func (r *Retriever) Retrieve(ctx context.Context, notebookName, query string) ([]string, error) {
	collection, err := r.store.Open(notebookName)
	if err != nil {
		return nil, err
	}

	queryEmbedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := collection.Query(ctx, queryEmbedding, r.nResults)
	if err != nil {
		return nil, err
	}

	var passages []string
	for _, result := range results {
		if result.Distance < r.threshold {
			passages = append(passages, result.Document)
		}
	}
	return passages, nil
}
