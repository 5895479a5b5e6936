package cron

import (
	"log"
	"time"

	"github.com/qs3c/qa_board_server/internal/repository"
	"github.com/qs3c/qa_board_server/internal/service"
)

// Service 进程内定时任务：每日清理过期验证流程和过旧的登录历史
type Service struct {
	verification *service.VerificationService
	historyRepo  *repository.LoginHistoryRepository
	retainDays   int
	stopChan     chan struct{}
}

func NewService(
	verification *service.VerificationService,
	historyRepo *repository.LoginHistoryRepository,
	retainDays int,
) *Service {
	return &Service{
		verification: verification,
		historyRepo:  historyRepo,
		retainDays:   retainDays,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runChallengeSweep()
	go s.runHistoryPurge()
	log.Println("Cron service started (challenge sweep + history purge)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runChallengeSweep 每小时清理过期验证流程
func (s *Service) runChallengeSweep() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			removed := s.verification.SweepExpired(time.Now())
			if removed > 0 {
				log.Printf("Swept %d expired verification challenges", removed)
			}
		}
	}
}

// runHistoryPurge 每日凌晨清理过旧的登录历史
func (s *Service) runHistoryPurge() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.purgeHistory()
			timer.Reset(24 * time.Hour)
		}
	}
}

func (s *Service) purgeHistory() {
	cutoff := time.Now().AddDate(0, 0, -s.retainDays)
	deleted, err := s.historyRepo.DeleteBefore(cutoff)
	if err != nil {
		log.Printf("Failed to purge login history: %v", err)
		return
	}
	log.Printf("Purged %d login history rows older than %d days", deleted, s.retainDays)
}
