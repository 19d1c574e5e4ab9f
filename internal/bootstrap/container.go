package bootstrap

import (
	"context"
	"log"

	"afom-board-be/internal/config"
	"afom-board-be/internal/confrontation"
	"afom-board-be/internal/controller"
	"afom-board-be/internal/handler"
	"afom-board-be/internal/pkg/logger"
	"afom-board-be/internal/repository/memory"
	"afom-board-be/internal/repository/unitofwork"
	"afom-board-be/internal/service"
	"afom-board-be/internal/websocket"
	"afom-board-be/pkg/events"
	"afom-board-be/pkg/llm/factory"
	pktNats "afom-board-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BoardController         controller.IBoardController
	SessionController       controller.ISessionController
	ConfrontationController controller.IConfrontationController
	AnalysisController      controller.IAnalysisController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ActivityService *service.ActivityService

	// Live board
	BoardLiveHandler *handler.BoardLiveHandler
	WebSocketHub     *websocket.Hub

	Logger  logger.ILogger
	closers []func()
}

// Close releases broker connections opened by NewContainer.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
	_ = c.Logger.Sync()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	// One subscriber per topic; blocking until ack keeps changes in commit order.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis
	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, live fan-out stays local: %v", err)
		_ = rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// WebSocket Hub
	liveLogger := logger.NewIsolatedLogger(cfg.App.LiveLogFilePath)
	wsHub := websocket.NewHub(rdb, cfg.Board.RedisChannel, liveLogger)

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	analysisCache := memory.NewAnalysisRepository(cfg.Board.AnalysisCacheTTL)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Board.ChangedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Board.ChangedTopic, wsHub, liveLogger)

	boardService := service.NewBoardService(uowFactory, publisherService, eventPublisher, sysLogger, service.BoardServiceConfig{
		NudgeColumns: cfg.Board.NudgeColumns,
	})
	sessionService := service.NewSessionService(uowFactory, cfg.App.ClientURL)
	confrontationService := service.NewConfrontationService(uowFactory, confrontation.NewLexicalMatcher())
	analysisService := service.NewAnalysisService(uowFactory, llmProvider, analysisCache, sysLogger, cfg.Board.AnalysisMinNotes)
	exportService := service.NewExportService(uowFactory, analysisCache)

	if natsSub != nil {
		c.ActivityService = service.NewActivityService(uowFactory, natsSub, sysLogger)
	}

	// 5. Controllers
	c.BoardController = controller.NewBoardController(boardService)
	c.SessionController = controller.NewSessionController(sessionService)
	c.ConfrontationController = controller.NewConfrontationController(confrontationService)
	c.AnalysisController = controller.NewAnalysisController(analysisService, exportService)
	c.BoardLiveHandler = handler.NewBoardLiveHandler(boardService, wsHub, liveLogger)
	c.WebSocketHub = wsHub
	c.ConsumerService = consumerService

	return c
}
