package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Dialog    DialogConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	AdminUserID        string
	DataDir            string
	IndexTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider string // "ollama" or "openai"
	LLMModel    string
	LLMBaseURL  string
	OpenAIKey   string

	EmbeddingProvider    string // "gemini" or "ollama"
	GeminiKey            string
	OllamaBaseURL        string
	OllamaEmbeddingModel string
}

type DialogConfig struct {
	DefaultLanguage     string
	MaxFailures         int
	ShortCooldownSec    int
	LongCooldownSec     int
	OutageWindowSec     int
	HistoryWindow       int
	SummaryEvery        int
	SummaryMinHistory   int
	DiscussContextChars int
}

type RetrievalConfig struct {
	MaxChunks       int
	EntryCharBudget int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			AdminUserID:        getEnv("ADMIN_USER_ID", ""),
			DataDir:            getEnv("CORPUS_DATA_DIR", "data"),
			IndexTopic:         getEnv("INDEX_CORPUS_TOPIC_NAME", "INDEX_CORPUS_CATEGORY"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:          getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:             getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:           getEnv("LLM_BASE_URL", ""),
			OpenAIKey:            getEnv("OPENAI_API_KEY", ""),
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "gemini"),
			GeminiKey:            getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Dialog: DialogConfig{
			DefaultLanguage:     getEnv("DEFAULT_LANGUAGE", "en"),
			MaxFailures:         getEnvAsInt("DIALOG_MAX_FAILURES", 3),
			ShortCooldownSec:    getEnvAsInt("DIALOG_SHORT_COOLDOWN_SEC", 30),
			LongCooldownSec:     getEnvAsInt("DIALOG_LONG_COOLDOWN_SEC", 300),
			OutageWindowSec:     getEnvAsInt("DIALOG_OUTAGE_WINDOW_SEC", 600),
			HistoryWindow:       getEnvAsInt("DIALOG_HISTORY_WINDOW", 10),
			SummaryEvery:        getEnvAsInt("DIALOG_SUMMARY_EVERY", 20),
			SummaryMinHistory:   getEnvAsInt("DIALOG_SUMMARY_MIN_HISTORY", 10),
			DiscussContextChars: getEnvAsInt("DIALOG_DISCUSS_CONTEXT_CHARS", 500),
		},
		Retrieval: RetrievalConfig{
			MaxChunks:       getEnvAsInt("RETRIEVAL_MAX_CHUNKS", 4),
			EntryCharBudget: getEnvAsInt("RETRIEVAL_ENTRY_CHAR_BUDGET", 500),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
