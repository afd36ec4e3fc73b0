package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	DataDir            string // root for per-notebook vector collections
	UploadsDir         string // root for uploaded document files
	SettingsPath       string
	PromptConfigPath   string
	ProcessFileTopic   string
	NatsURL            string // optional external event bus
}

type DatabaseConfig struct {
	Connection string // postgres DSN; empty means local sqlite file
	SQLitePath string
}

type APIKeys struct {
	GoogleGemini string
	Groq         string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			DataDir:            getEnv("VECTOR_DB_DIR", "data/vector_db"),
			UploadsDir:         getEnv("UPLOADS_DIR", "data/uploads"),
			SettingsPath:       getEnv("APP_CONFIG_PATH", "config/app_config.yaml"),
			PromptConfigPath:   getEnv("PROMPT_CONFIG_PATH", "config/prompt_config.yaml"),
			ProcessFileTopic:   getEnv("PROCESS_FILE_TOPIC_NAME", "PROCESS_NOTEBOOK_FILE"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			SQLitePath: getEnv("SQLITE_PATH", "data/catalog.db"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Groq:         getEnv("GROQ_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
