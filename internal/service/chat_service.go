package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"notebookrag/internal/config"
	"notebookrag/internal/constant"
	"notebookrag/internal/dto"
	"notebookrag/internal/entity"
	"notebookrag/internal/pkg/logger"
	"notebookrag/internal/repository/memory"
	"notebookrag/internal/repository/specification"
	"notebookrag/internal/repository/unitofwork"
	"notebookrag/pkg/apperror"
	"notebookrag/pkg/llm"
	"notebookrag/pkg/llm/factory"
	"notebookrag/pkg/rag/answerer"
	"notebookrag/pkg/rag/prompt"
)

type IChatService interface {
	Ask(ctx context.Context, notebookId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, notebookId uuid.UUID) (*dto.ChatHistoryResponse, error)
	Settings() *dto.LLMSettingsResponse
	SystemPrompt(ctx context.Context, notebookId uuid.UUID) (*dto.SystemPromptResponse, error)
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	answerer      *answerer.Answerer
	transcripts   *memory.TranscriptRepository
	settings      *config.Settings
	templates     map[string]prompt.Template
	factoryParams factory.Params
	newProvider   func(providerType string, params factory.Params) (llm.Provider, error)
	log           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	ans *answerer.Answerer,
	transcripts *memory.TranscriptRepository,
	settings *config.Settings,
	templates map[string]prompt.Template,
	factoryParams factory.Params,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		answerer:      ans,
		transcripts:   transcripts,
		settings:      settings,
		templates:     templates,
		factoryParams: factoryParams,
		newProvider:   factory.New,
		log:           log,
	}
}

// Ask answers a question against a notebook. A failed generation is
// recorded in the transcript with an error prefix instead of propagating,
// so the chat session keeps going across provider hiccups.
func (s *chatService) Ask(ctx context.Context, notebookId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	notebook, err := s.findNotebook(ctx, notebookId)
	if err != nil {
		return nil, err
	}

	s.transcripts.Append(notebook.Name, entity.ChatMessage{Role: "user", Content: req.Query})

	answer, err := s.generate(ctx, notebook.Name, req)
	if err != nil {
		s.log.Error("ChatService", "query failed", map[string]interface{}{
			"notebook": notebook.Name,
			"error":    err.Error(),
		})
		answer = constant.ErrorReplyPrefix + err.Error()
	}
	s.transcripts.Append(notebook.Name, entity.ChatMessage{Role: "assistant", Content: answer})

	return &dto.ChatResponse{
		Answer:  answer,
		History: s.historyEntries(notebook.Name),
	}, nil
}

func (s *chatService) generate(ctx context.Context, notebookName string, req *dto.ChatRequest) (string, error) {
	providerName := req.Provider
	if providerName == "" {
		providerName = s.settings.LLM.Provider
	}
	modelName := req.Model
	if modelName == "" {
		modelName = s.settings.LLM.Model
	}

	params := s.factoryParams
	params.Model = modelName
	provider, err := s.newProvider(providerName, params)
	if err != nil {
		return "", err
	}

	return s.answerer.Answer(ctx, notebookName, req.Query, provider)
}

func (s *chatService) History(ctx context.Context, notebookId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	notebook, err := s.findNotebook(ctx, notebookId)
	if err != nil {
		return nil, err
	}
	return &dto.ChatHistoryResponse{History: s.historyEntries(notebook.Name)}, nil
}

func (s *chatService) Settings() *dto.LLMSettingsResponse {
	providers := make(map[string][]string, len(s.settings.Providers))
	for name, entry := range s.settings.Providers {
		providers[name] = entry.Models
	}
	return &dto.LLMSettingsResponse{
		DefaultProvider: s.settings.LLM.Provider,
		DefaultModel:    s.settings.LLM.Model,
		Providers:       providers,
	}
}

// SystemPrompt renders the notebook-scoped assistant persona.
func (s *chatService) SystemPrompt(ctx context.Context, notebookId uuid.UUID) (*dto.SystemPromptResponse, error) {
	notebook, err := s.findNotebook(ctx, notebookId)
	if err != nil {
		return nil, err
	}

	template, ok := s.templates[constant.SystemPromptAdvancedName]
	if !ok {
		return nil, apperror.Config(nil, "prompt template %s is not configured", constant.SystemPromptAdvancedName)
	}

	rendered, err := prompt.BuildSystem(template,
		fmt.Sprintf("You are assisting with the notebook '%s'.", notebook.Name))
	if err != nil {
		return nil, err
	}
	return &dto.SystemPromptResponse{SystemPrompt: rendered}, nil
}

func (s *chatService) findNotebook(ctx context.Context, notebookId uuid.UUID) (*entity.Notebook, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("notebook %s does not exist", notebookId)
	}
	return notebook, nil
}

func (s *chatService) historyEntries(notebookName string) []*dto.ChatEntry {
	transcript := s.transcripts.Get(notebookName)
	entries := make([]*dto.ChatEntry, 0, len(transcript))
	for _, message := range transcript {
		entries = append(entries, &dto.ChatEntry{
			Role:    message.Role,
			Content: message.Content,
		})
	}
	return entries
}
