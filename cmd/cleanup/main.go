package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/database"
	"github.com/qs3c/qa_board_server/internal/model"
	"github.com/qs3c/qa_board_server/internal/repository"
)

// 登录历史离线清理工具，默认 dry-run 只统计不删除
func main() {
	var (
		configPath = flag.String("config", "config.yaml", "配置文件路径")
		retainDays = flag.Int("retain-days", 90, "登录历史保留天数")
		dryRun     = flag.Bool("dry-run", true, "只统计不删除")
	)
	flag.Parse()

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		*configPath = env
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	cutoff := time.Now().AddDate(0, 0, -*retainDays)
	log.Printf("Cleanup login history before %s (retain %d days)", cutoff.Format("2006-01-02 15:04:05"), *retainDays)

	var count int64
	if err := db.Model(&model.LoginHistory{}).Where("created_at < ?", cutoff).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count login history: %v", err)
	}
	log.Printf("Found %d expired login history records", count)

	if *dryRun {
		log.Println("Dry-run mode, nothing deleted. Re-run with -dry-run=false to delete.")
		return
	}

	historyRepo := repository.NewLoginHistoryRepository(db)
	deleted, err := historyRepo.DeleteBefore(cutoff)
	if err != nil {
		log.Fatalf("Failed to delete login history: %v", err)
	}
	log.Printf("Deleted %d login history records", deleted)
}
