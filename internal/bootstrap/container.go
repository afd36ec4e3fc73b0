package bootstrap

import (
	"log"

	"notebookrag/internal/config"
	"notebookrag/internal/constant"
	"notebookrag/internal/controller"
	"notebookrag/internal/pkg/logger"
	"notebookrag/internal/repository/memory"
	"notebookrag/internal/repository/unitofwork"
	"notebookrag/internal/service"
	"notebookrag/pkg/embedding"
	"notebookrag/pkg/events"
	"notebookrag/pkg/llm/factory"
	"notebookrag/pkg/nats"
	"notebookrag/pkg/rag/answerer"
	"notebookrag/pkg/rag/retriever"
	"notebookrag/pkg/textsplit"
	"notebookrag/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NotebookController controller.INotebookController
	FileController     controller.IFileController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. YAML configuration
	settings, err := config.LoadSettings(cfg.App.SettingsPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load application settings: %v", err)
	}
	templates, err := config.LoadPromptConfig(cfg.App.PromptConfigPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load prompt config: %v", err)
	}
	ragTemplate, ok := templates[constant.RagAssistantPromptName]
	if !ok {
		log.Fatalf("[FATAL] Prompt config is missing template %q", constant.RagAssistantPromptName)
	}

	// 4. Embedding Provider based on Config. Construction is deferred
	// behind the shared wrapper until the first embed call.
	embedder := embedding.NewShared(func() (embedding.Provider, error) {
		if cfg.Ai.EmbeddingProvider == "ollama" {
			log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
			return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel), nil
		}
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini), nil
	})

	// 5. Retrieval stack
	store := vectorstore.NewStore(cfg.App.DataDir)
	ragRetriever := retriever.New(store, embedder, settings.VectorDB.NResults, settings.VectorDB.Threshold)
	ragAnswerer := answerer.New(ragRetriever, ragTemplate, settings.ReasoningStrategies)

	splitter := textsplit.Default()

	factoryParams := factory.Params{
		Model:         settings.LLM.Model,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		GroqApiKey:    cfg.Keys.Groq,
	}

	// 6. Lifecycle event announcer. NATS is optional; without it events
	// stay inside the process.
	var announcer events.Announcer = events.NopAnnouncer{}
	if cfg.App.NatsURL != "" {
		natsPublisher, err := nats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] NATS unavailable, lifecycle events disabled: %v", err)
		} else {
			announcer = natsPublisher
		}
	}

	// 7. Services
	transcripts := memory.NewTranscriptRepository()
	publisherService := service.NewPublisherService(cfg.App.ProcessFileTopic, pubSub)

	notebookService := service.NewNotebookService(uowFactory, store, transcripts, announcer, cfg.App.UploadsDir, sysLogger)
	documentService := service.NewDocumentService(
		uowFactory,
		store,
		embedder,
		splitter,
		publisherService,
		announcer,
		cfg.App.UploadsDir,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ProcessFileTopic, documentService, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		ragAnswerer,
		transcripts,
		settings,
		templates,
		factoryParams,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		NotebookController: controller.NewNotebookController(notebookService),
		FileController:     controller.NewFileController(documentService),
		ChatController:     controller.NewChatController(chatService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
