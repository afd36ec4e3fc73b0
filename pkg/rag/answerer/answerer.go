package answerer

import (
	"context"
	"strings"

	"notebookrag/pkg/llm"
	"notebookrag/pkg/rag/prompt"
	"notebookrag/pkg/rag/retriever"
)

// NoRelevantInformation is returned verbatim when retrieval produces no
// passage above the similarity threshold. The model is never invoked in
// that case.
const NoRelevantInformation = "I couldn't find any relevant information in this notebook to answer your question."

// Answerer runs the full question-answering flow for a notebook: retrieve
// relevant passages, assemble the grounded prompt, and ask the model.
type Answerer struct {
	retriever  *retriever.Retriever
	template   prompt.Template
	strategies map[string]string
}

func New(r *retriever.Retriever, template prompt.Template, strategies map[string]string) *Answerer {
	return &Answerer{
		retriever:  r,
		template:   template,
		strategies: strategies,
	}
}

// Answer responds to a query against a notebook through the given model
// provider. Retrieval and prompt assembly errors are returned as-is, so a
// missing notebook surfaces as a not-found error.
func (a *Answerer) Answer(ctx context.Context, notebookName, query string, provider llm.Provider, options ...llm.Option) (string, error) {
	passages, err := a.retriever.Retrieve(ctx, notebookName, query)
	if err != nil {
		return "", err
	}
	if len(passages) == 0 {
		return NoRelevantInformation, nil
	}

	inputData := "Relevant documents:\n\n" + strings.Join(passages, "\n\n") +
		"\n\nUser's question:\n\n" + query

	assembled, err := prompt.Build(a.template, inputData, a.strategies)
	if err != nil {
		return "", err
	}

	return provider.Generate(ctx, assembled, options...)
}
