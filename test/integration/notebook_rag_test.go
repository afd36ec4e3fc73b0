package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebookrag/internal/bootstrap"
	"notebookrag/internal/config"
	"notebookrag/internal/constant"
	"notebookrag/internal/controller"
	"notebookrag/internal/dto"
	"notebookrag/internal/model"
	"notebookrag/internal/pkg/serverutils"
	"notebookrag/internal/repository/memory"
	"notebookrag/internal/repository/unitofwork"
	"notebookrag/internal/server"
	"notebookrag/internal/service"
	"notebookrag/pkg/database"
	"notebookrag/pkg/events"
	"notebookrag/pkg/llm"
	"notebookrag/pkg/llm/factory"
	"notebookrag/pkg/rag/answerer"
	"notebookrag/pkg/rag/prompt"
	"notebookrag/pkg/rag/retriever"
	"notebookrag/pkg/textsplit"
	"notebookrag/pkg/vectorstore"
)

// mappedEmbedder gives registered texts fixed directions so retrieval is
// deterministic without a running embedding service.
type mappedEmbedder struct {
	vectors map[string][]float32
}

func (e *mappedEmbedder) vector(text string) []float32 {
	if v, ok := e.vectors[text]; ok {
		return v
	}
	return []float32{0, 0, 1}
}

func (e *mappedEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *mappedEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.vector(text), nil
}

// recordingGateway stands in for an LLM backend and records every prompt.
type recordingGateway struct {
	reply   string
	prompts []string
}

func (g *recordingGateway) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	for _, m := range history {
		g.prompts = append(g.prompts, m.Content)
	}
	return g.reply, nil
}

func (g *recordingGateway) Generate(_ context.Context, p string, _ ...llm.Option) (string, error) {
	g.prompts = append(g.prompts, p)
	return g.reply, nil
}

type testEnv struct {
	app     *fiber.App
	gateway *recordingGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Notebook{}, &model.File{}))

	uowFactory := unitofwork.NewRepositoryFactory(db)
	store := vectorstore.NewStore(filepath.Join(t.TempDir(), "vector_db"))
	transcripts := memory.NewTranscriptRepository()
	uploadsDir := filepath.Join(t.TempDir(), "uploads")

	embedder := &mappedEmbedder{vectors: map[string][]float32{
		"The sky is blue. Water is wet.": {1, 0, 0},
		"What color is the sky?":         {1, 0, 0},
	}}

	gateway := &recordingGateway{reply: "The sky is blue."}
	factory.Register("scripted", func(factory.Params) llm.Provider { return gateway })

	settings := &config.Settings{
		LLM: config.LLMSettings{Provider: "scripted", Model: "scripted-model"},
		VectorDB: config.VectorDBSettings{
			NResults:  retriever.DefaultNResults,
			Threshold: retriever.DefaultThreshold,
		},
		Providers: map[string]config.ProviderModels{
			"scripted": {Models: []string{"scripted-model"}},
		},
		ReasoningStrategies: map[string]string{},
	}

	templates := map[string]prompt.Template{
		constant.RagAssistantPromptName: {
			Role:        "An expert research assistant",
			Instruction: prompt.Scalar("Answer the question using only the provided documents."),
		},
		constant.SystemPromptAdvancedName: {
			Role: "An expert research assistant",
		},
	}

	ans := answerer.New(
		retriever.New(store, embedder, settings.VectorDB.NResults, settings.VectorDB.Threshold),
		templates[constant.RagAssistantPromptName],
		settings.ReasoningStrategies,
	)

	var nopLog nopLogger
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })
	publisher := service.NewPublisherService("PROCESS_NOTEBOOK_FILE", pubSub)

	notebookService := service.NewNotebookService(uowFactory, store, transcripts, events.NopAnnouncer{}, uploadsDir, nopLog)
	documentService := service.NewDocumentService(uowFactory, store, embedder, textsplit.Default(), publisher, events.NopAnnouncer{}, uploadsDir, nopLog)
	chatService := service.NewChatService(uowFactory, ans, transcripts, settings, templates, factory.Params{}, nopLog)

	container := &bootstrap.Container{
		NotebookController: controller.NewNotebookController(notebookService),
		FileController:     controller.NewFileController(documentService),
		ChatController:     controller.NewChatController(chatService),
		Logger:             nopLog,
	}

	cfg := &config.Config{App: config.AppConfig{
		Port:               "3000",
		CorsAllowedOrigins: "http://localhost:5173",
	}}

	return &testEnv{
		app:     server.New(cfg, container).GetApp(),
		gateway: gateway,
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func (e *testEnv) request(t *testing.T, method, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func (e *testEnv) requestJSON(t *testing.T, method, path string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return e.request(t, method, path, body, "application/json")
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var envelope serverutils.Response[T]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func (e *testEnv) createNotebook(t *testing.T, name string) dto.CreateNotebookResponse {
	t.Helper()
	res := e.requestJSON(t, http.MethodPost, "/api/notebook/v1", dto.CreateNotebookRequest{Name: name})
	require.Equal(t, http.StatusOK, res.StatusCode)
	return decode[dto.CreateNotebookResponse](t, res)
}

func (e *testEnv) uploadFile(t *testing.T, notebookId, filename, content string) dto.UploadFilesResponse {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	res := e.request(t, http.MethodPost,
		fmt.Sprintf("/api/notebook/v1/%s/files", notebookId),
		&buf, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, res.StatusCode)
	return decode[dto.UploadFilesResponse](t, res)
}

func TestNotebookLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	created := env.createNotebook(t, "research")
	assert.Equal(t, "research", created.Name)

	// Duplicate names are rejected.
	res := env.requestJSON(t, http.MethodPost, "/api/notebook/v1", dto.CreateNotebookRequest{Name: "research"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Names shorter than three characters fail validation.
	res = env.requestJSON(t, http.MethodPost, "/api/notebook/v1", dto.CreateNotebookRequest{Name: "ab"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	list := decode[[]dto.GetAllNotebookResponse](t, env.requestJSON(t, http.MethodGet, "/api/notebook/v1", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "research", list[0].Name)

	res = env.requestJSON(t, http.MethodDelete, "/api/notebook/v1/"+created.Id.String(), nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = env.requestJSON(t, http.MethodGet, "/api/notebook/v1/"+created.Id.String(), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDocumentIngestionAndGroundedChat(t *testing.T) {
	env := newTestEnv(t)

	created := env.createNotebook(t, "research")
	uploaded := env.uploadFile(t, created.Id.String(), "notes.txt", "The sky is blue. Water is wet.")
	require.Len(t, uploaded.Uploaded, 1)
	assert.False(t, uploaded.Uploaded[0].Processed)

	processed := decode[dto.ProcessFilesResponse](t, env.requestJSON(t, http.MethodPost,
		fmt.Sprintf("/api/notebook/v1/%s/files/process", created.Id), nil))
	assert.Equal(t, 1, processed.Processed)
	assert.Empty(t, processed.Failures)

	files := decode[[]dto.FileResponse](t, env.requestJSON(t, http.MethodGet,
		fmt.Sprintf("/api/notebook/v1/%s/files", created.Id), nil))
	require.Len(t, files, 1)
	assert.True(t, files[0].Processed)

	chat := decode[dto.ChatResponse](t, env.requestJSON(t, http.MethodPost,
		"/api/chat/v1/"+created.Id.String(),
		dto.ChatRequest{Query: "What color is the sky?"}))
	assert.Equal(t, "The sky is blue.", chat.Answer)

	// The gateway saw the indexed passage inside the assembled prompt.
	require.Len(t, env.gateway.prompts, 1)
	assert.Contains(t, env.gateway.prompts[0], "The sky is blue. Water is wet.")
	assert.Contains(t, env.gateway.prompts[0], "What color is the sky?")

	history := decode[dto.ChatHistoryResponse](t, env.requestJSON(t, http.MethodGet,
		fmt.Sprintf("/api/chat/v1/%s/history", created.Id), nil))
	require.Len(t, history.History, 2)
	assert.Equal(t, "user", history.History[0].Role)
	assert.Equal(t, "assistant", history.History[1].Role)
}

func TestChatFallsBackOnEmptyNotebook(t *testing.T) {
	env := newTestEnv(t)

	created := env.createNotebook(t, "empty-notebook")

	chat := decode[dto.ChatResponse](t, env.requestJSON(t, http.MethodPost,
		"/api/chat/v1/"+created.Id.String(),
		dto.ChatRequest{Query: "anything at all"}))

	assert.Equal(t, answerer.NoRelevantInformation, chat.Answer)
	assert.Empty(t, env.gateway.prompts)
}

func TestUploadRejectsUnsupportedFileType(t *testing.T) {
	env := newTestEnv(t)
	created := env.createNotebook(t, "research")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", "binary.exe")
	require.NoError(t, err)
	_, err = io.WriteString(part, "payload")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	res := env.request(t, http.MethodPost,
		fmt.Sprintf("/api/notebook/v1/%s/files", created.Id),
		&buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSystemPromptEndpoint(t *testing.T) {
	env := newTestEnv(t)
	created := env.createNotebook(t, "research")

	data := decode[dto.SystemPromptResponse](t, env.requestJSON(t, http.MethodGet,
		fmt.Sprintf("/api/chat/v1/%s/system-prompt", created.Id), nil))

	assert.True(t, strings.HasPrefix(data.SystemPrompt, "You are an expert research assistant."))
	assert.Contains(t, data.SystemPrompt, "You are assisting with the notebook 'research'.")
}

func TestSettingsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	data := decode[dto.LLMSettingsResponse](t, env.requestJSON(t, http.MethodGet, "/api/chat/v1/settings", nil))
	assert.Equal(t, "scripted", data.DefaultProvider)
	assert.Equal(t, "scripted-model", data.DefaultModel)
}
