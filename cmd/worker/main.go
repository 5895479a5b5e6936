package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/database"
	"github.com/qs3c/qa_board_server/internal/pkg/email"
	"github.com/qs3c/qa_board_server/internal/pkg/queue"
	"github.com/qs3c/qa_board_server/internal/worker"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	mailQueue := queue.NewQueue(rdb, cfg.Queue.MailQueue)
	sender := email.NewService(&cfg.Email)
	processor := worker.NewMailProcessor(mailQueue, sender)

	// 监听退出信号
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	log.Printf("Mail worker started, queue: %s", cfg.Queue.MailQueue)
	processor.Run(ctx)
	log.Println("Mail worker stopped")
}
