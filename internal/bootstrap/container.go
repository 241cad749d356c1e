package bootstrap

import (
	"context"
	"log"

	"tg-assist-be/internal/config"
	"tg-assist-be/internal/controller"
	"tg-assist-be/internal/pkg/logger"
	"tg-assist-be/internal/repository/contract"
	"tg-assist-be/internal/repository/implementation"
	"tg-assist-be/internal/repository/memory"
	"tg-assist-be/internal/service"
	"tg-assist-be/pkg/dedupe"
	"tg-assist-be/pkg/llm/factory"
	"tg-assist-be/pkg/mediafetch"
	pktNats "tg-assist-be/pkg/nats"
	"tg-assist-be/pkg/pin"
	"tg-assist-be/pkg/relay"
	"tg-assist-be/pkg/telegram"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const botEventTopic = "BOT_EVENTS"

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService
}

// NewContainer wires all dependencies. db may be nil: the upload and
// retrieval workflows then degrade to "unavailable" instead of crashing
// the process.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 1. Collaborators
	tgClient := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.APIBaseURL)

	var relayClient service.MessageRelay
	if cfg.Relay.APIURL != "" {
		relayClient = relay.NewClient(cfg.Relay.APIURL)
	} else {
		log.Printf("[WARN] SEND_MESSAGE_API_URL not set, /sendmsg disabled")
	}

	maxBytes := int64(cfg.Media.MaxFileSizeMB) * 1024 * 1024
	fetcher := mediafetch.NewFetcher(cfg.Media.ResolverURL, maxBytes)
	if !fetcher.CanFetchVideo() {
		log.Printf("[WARN] MEDIA_RESOLVER_URL not set, /yt_download disabled")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Printf("[WARN] Failed to initialize LLM Provider, /ask_ai disabled: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	var fileRepo contract.FileRecordRepository
	var logRepo contract.SystemLogRepository
	if db != nil {
		fileRepo = implementation.NewFileRecordRepository(db)
		logRepo = implementation.NewSystemLogRepository(db)
	} else {
		log.Printf("[WARN] Database not connected, /upload_file and /get_file disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(botEventTopic, pubSub)

	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 3. Redis (duplicate delivery guard)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis, duplicate guard degraded: %v", err)
		}
	}
	guard := dedupe.NewGuard(rdb)

	// 4. Core
	sessionRepo := memory.NewSessionRepository()
	pinGen := pin.NewGenerator()

	conversationService := service.NewConversationService(
		sessionRepo,
		tgClient,
		relayClient,
		fetcher,
		fileRepo,
		llmProvider,
		pinGen,
		publisherService,
		sysLogger,
	)

	auditService := service.NewAuditService(pubSub, botEventTopic, logRepo, natsPub, sysLogger)
	adminService := service.NewAdminService(sysLogger, fileRepo, logRepo)

	return &Container{
		WebhookController: controller.NewWebhookController(
			conversationService,
			guard,
			cfg.Telegram.WebhookSecret,
			sysLogger,
		),
		AdminController: controller.NewAdminController(adminService),
		AuditService:    auditService,
	}
}
