package bootstrap

import (
	"context"
	"log"
	"time"

	"item-finder-be/internal/config"
	"item-finder-be/internal/controller"
	"item-finder-be/internal/pkg/logger"
	"item-finder-be/internal/repository/implementation"
	"item-finder-be/internal/repository/memory"
	"item-finder-be/internal/service"
	"item-finder-be/pkg/vision"

	pktNats "item-finder-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AnalysisController  controller.IAnalysisController
	AisleController     controller.IAisleController
	CategoryController  controller.ICategoryController
	ReconcileController controller.IReconcileController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	categoryRepo := implementation.NewCategoryRepository(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS is optional; a nil publisher disables outward events.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Redis is optional; without it aisle lookups go straight to Postgres.
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
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Session.TTLMinutes) * time.Minute)

	// Initialize Vision Provider
	visionProvider, err := vision.NewGeminiProvider(context.Background(), cfg.Keys.GoogleGemini, cfg.Ai.VisionModel)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Vision Provider: %v", err)
	}
	log.Printf("[INFO] Using Vision Provider: GEMINI (%s)", cfg.Ai.VisionModel)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.AuditTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.AuditTopic, sysLogger)

	aisleCache := service.NewAisleCache(rdb, time.Duration(cfg.Match.CacheTTLSeconds)*time.Second)

	matcherService := service.NewMatcherService(categoryRepo, sessionRepo, aisleCache, cfg.Match.MaxConcurrentLookups)
	analysisService := service.NewAnalysisService(
		visionProvider,
		sessionRepo,
		publisherService,
		time.Duration(cfg.Ai.ExtractionTimeout)*time.Second,
		sysLogger,
	)
	categoryService := service.NewCategoryService(categoryRepo, aisleCache, publisherService, natsPub, sysLogger)
	sessionService := service.NewSessionService(
		sessionRepo,
		categoryRepo,
		matcherService,
		aisleCache,
		publisherService,
		natsPub,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		AnalysisController:  controller.NewAnalysisController(analysisService),
		AisleController:     controller.NewAisleController(matcherService),
		CategoryController:  controller.NewCategoryController(categoryService),
		ReconcileController: controller.NewReconcileController(sessionService),

		ConsumerService: consumerService,
	}
}
