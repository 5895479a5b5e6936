package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/api"
	"github.com/qs3c/qa_board_server/internal/api/handler"
	"github.com/qs3c/qa_board_server/internal/database"
	"github.com/qs3c/qa_board_server/internal/pkg/cron"
	"github.com/qs3c/qa_board_server/internal/pkg/oauth"
	"github.com/qs3c/qa_board_server/internal/pkg/oss"
	"github.com/qs3c/qa_board_server/internal/pkg/pubsub"
	"github.com/qs3c/qa_board_server/internal/pkg/queue"
	"github.com/qs3c/qa_board_server/internal/pkg/ws"
	"github.com/qs3c/qa_board_server/internal/reconciler"
	"github.com/qs3c/qa_board_server/internal/repository"
	"github.com/qs3c/qa_board_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选，未配置时禁用视频上传）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化 Queue 和 Pub/Sub
	mailQueue := queue.NewQueue(rdb, cfg.Queue.MailQueue)
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	historyRepo := repository.NewLoginHistoryRepository(db)

	// 初始化 Service
	policyService := service.NewPolicyService(cfg)
	verificationService := service.NewVerificationService(userRepo, mailQueue, cfg)
	resetService := service.NewPasswordResetService(userRepo, mailQueue, cfg)
	pointsService := service.NewPointsService(userRepo, transferRepo, cfg)
	authService := service.NewAuthService(userRepo, historyRepo, cfg)
	userService := service.NewUserService(userRepo, historyRepo)
	questionService := service.NewQuestionService(
		questionRepo, answerRepo, policyService, verificationService,
		ossClient, publisher, wsHub, cfg,
	)
	voteService := service.NewVoteService(answerRepo, questionRepo, publisher, wsHub)

	// 启动快照调和器
	rec := reconciler.New(questionRepo, subscriber, time.Duration(cfg.Realtime.DebounceMS)*time.Millisecond)
	if err := rec.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start reconciler: %v", err)
	}
	defer rec.Stop()
	log.Println("Reconciler started")

	// 启动定时任务
	cronService := cron.NewService(verificationService, historyRepo, 90)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, resetService, oauth.NewStateStore(rdb))
	userHandler := handler.NewUserHandler(userService, pointsService)
	questionHandler := handler.NewQuestionHandler(questionService, voteService, rec)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		questionHandler,
		verificationHandler,
		websocketHandler,
		policyService,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
