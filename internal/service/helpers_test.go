package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"notebookrag/internal/model"
	"notebookrag/internal/repository/unitofwork"
	"notebookrag/pkg/database"
	"notebookrag/pkg/llm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Notebook{}, &model.File{}))
	return db
}

func newTestUowFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(newTestDB(t))
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// capturePublisher records published payloads without a broker.
type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// hashEmbedder produces deterministic vectors: identical texts map to
// identical directions, so retrieval behaves predictably in tests. Texts
// registered as related share a direction component.
type hashEmbedder struct {
	vectors map[string][]float32
	fall    []float32
}

func newHashEmbedder() *hashEmbedder {
	return &hashEmbedder{
		vectors: make(map[string][]float32),
		fall:    []float32{0, 0, 1},
	}
}

func (e *hashEmbedder) set(text string, vector []float32) {
	e.vectors[text] = vector
}

func (e *hashEmbedder) lookup(text string) []float32 {
	if v, ok := e.vectors[text]; ok {
		return v
	}
	return e.fall
}

func (e *hashEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.lookup(text)
	}
	return out, nil
}

func (e *hashEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.lookup(text), nil
}

// scriptedProvider is an llm.Provider returning canned replies.
type scriptedProvider struct {
	reply string
	err   error
	calls int
}

func (p *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	p.calls++
	return p.reply, p.err
}

func (p *scriptedProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	p.calls++
	return p.reply, p.err
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	headers := form.File["files"]
	require.Len(t, headers, 1)
	return headers[0]
}
