package bootstrap

import (
	"context"
	"errors"
	"log"
	"time"

	"writer-coach-be/internal/config"
	"writer-coach-be/internal/controller"
	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/internal/repository/contract"
	"writer-coach-be/internal/repository/implementation"
	"writer-coach-be/internal/repository/memory"
	"writer-coach-be/internal/service"
	"writer-coach-be/pkg/corpus"
	"writer-coach-be/pkg/embedding"
	"writer-coach-be/pkg/llm"
	"writer-coach-be/pkg/llm/factory"
	natspkg "writer-coach-be/pkg/nats"
	"writer-coach-be/pkg/retrieval"
	"writer-coach-be/pkg/tools"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	DialogService  service.IDialogService
	IndexPublisher service.IIndexPublisherService
	IndexConsumer  service.IIndexConsumerService

	ChatController  controller.IChatController
	AdminController controller.IAdminController

	NatsPublisher *natspkg.Publisher

	// IndexingReady is true when both the embedding backend and the
	// vector store are configured, i.e. startup indexing makes sense.
	IndexingReady bool
}

// NewContainer wires the whole service. Missing optional backends (NATS,
// redis, embedding keys, even the database) degrade the features that
// need them instead of failing startup; only the feature becomes
// unreachable, the dialog keeps running.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Logger
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Corpus
	corpusStore, err := corpus.Load(cfg.App.DataDir)
	if err != nil {
		appLogger.Error("bootstrap", "failed to load corpus, starting with empty library", map[string]interface{}{
			"error":    err.Error(),
			"data_dir": cfg.App.DataDir,
		})
		corpusStore = corpus.NewStore(nil)
	}
	appLogger.Info("bootstrap", "corpus loaded", map[string]interface{}{
		"chunks": corpusStore.Len(),
	})

	// 3. Embedding provider (optional; without it retrieval is lexical-only)
	var embedder embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
	case "gemini":
		if cfg.Ai.GeminiKey != "" {
			embedder = embedding.NewGeminiProvider(cfg.Ai.GeminiKey)
		} else {
			appLogger.Warn("bootstrap", "GOOGLE_GEMINI_API_KEY missing, semantic retrieval disabled", nil)
		}
	default:
		appLogger.Warn("bootstrap", "unknown embedding provider, semantic retrieval disabled", map[string]interface{}{
			"provider": cfg.Ai.EmbeddingProvider,
		})
	}

	// 4. Repositories
	var chunkRepo contract.ChunkEmbeddingRepository
	var prefRepo contract.UserPrefRepository
	if db != nil {
		chunkRepo = implementation.NewChunkEmbeddingRepository(db)
		prefRepo = implementation.NewUserPrefRepository(db)
	} else {
		appLogger.Warn("bootstrap", "no database, language persistence and vector index disabled", nil)
	}
	sessionRepo := memory.NewSessionRepository()

	// 5. LLM provider
	provider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.LLMBaseURL, cfg.Ai.OpenAIKey)
	if err != nil {
		appLogger.Error("bootstrap", "LLM provider misconfigured, generation disabled", map[string]interface{}{
			"error":    err.Error(),
			"provider": cfg.Ai.LLMProvider,
		})
		provider = &disabledLLM{}
	}

	// 6. Retrieval engine
	engine := retrieval.NewEngine(corpusStore, embedder, chunkRepo, appLogger, retrieval.Config{
		MaxChunks:       cfg.Retrieval.MaxChunks,
		EntryCharBudget: cfg.Retrieval.EntryCharBudget,
	})

	// 7. Redis-backed word stats (optional)
	var statsService service.IStatsService
	if cfg.App.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			appLogger.Warn("bootstrap", "invalid REDIS_URL, word stats disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			statsService = service.NewStatsService(redis.NewClient(redisOpts), appLogger)
		}
	}

	// 8. NATS operator notifier (optional)
	var natsPublisher *natspkg.Publisher
	if cfg.App.NatsURL != "" {
		natsPublisher, err = natspkg.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			appLogger.Warn("bootstrap", "NATS unreachable, operator notifications disabled", map[string]interface{}{
				"error": err.Error(),
			})
			natsPublisher = nil
		}
	}
	notifier := service.NewNotifierService(natsPublisher, appLogger)

	// 9. Indexing pipeline (watermill in-process pubsub)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	indexer := service.NewIndexerService(corpusStore, embedder, chunkRepo, appLogger)
	indexPublisher := service.NewIndexPublisherService(pubSub, cfg.App.IndexTopic)
	indexConsumer := service.NewIndexConsumerService(pubSub, cfg.App.IndexTopic, indexer, appLogger)

	// 10. Assistant + dialog
	registry := tools.NewRegistry()
	assistant := service.NewAssistantService(provider, engine, appLogger, service.AssistantConfig{
		HistoryWindow:       cfg.Dialog.HistoryWindow,
		SummaryEvery:        cfg.Dialog.SummaryEvery,
		SummaryMinHistory:   cfg.Dialog.SummaryMinHistory,
		DiscussContextChars: cfg.Dialog.DiscussContextChars,
	})
	dialogService := service.NewDialogService(
		sessionRepo,
		prefRepo,
		registry,
		assistant,
		statsService,
		notifier,
		appLogger,
		service.DialogConfig{
			DefaultLanguage: cfg.Dialog.DefaultLanguage,
			MaxFailures:     cfg.Dialog.MaxFailures,
			ShortCooldown:   secondsOf(cfg.Dialog.ShortCooldownSec),
			LongCooldown:    secondsOf(cfg.Dialog.LongCooldownSec),
			OutageWindow:    secondsOf(cfg.Dialog.OutageWindowSec),
		},
	)

	// 11. Controllers
	chatController := controller.NewChatController(dialogService)
	adminController := controller.NewAdminController(dialogService, indexPublisher, appLogger, cfg.App.AdminUserID)

	if db == nil {
		log.Println("Warning: running without a database")
	}

	return &Container{
		Logger:          appLogger,
		DialogService:   dialogService,
		IndexPublisher:  indexPublisher,
		IndexConsumer:   indexConsumer,
		ChatController:  chatController,
		AdminController: adminController,
		NatsPublisher:   natsPublisher,
		IndexingReady:   embedder != nil && chunkRepo != nil,
	}
}

// disabledLLM stands in when the provider config is broken. Every call
// fails as a GenerationError, which the dialog layer already knows how to
// absorb.
type disabledLLM struct{}

func (d *disabledLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", &llm.GenerationError{Provider: "none", Err: errNotConfigured}
}

func (d *disabledLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "", &llm.GenerationError{Provider: "none", Err: errNotConfigured}
}

var errNotConfigured = errors.New("llm provider not configured")

func secondsOf(n int) time.Duration {
	return time.Duration(n) * time.Second
}
