package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/pkg/otp"
	"github.com/qs3c/qa_board_server/internal/pkg/queue"
	"github.com/qs3c/qa_board_server/internal/repository"
)

var (
	ErrChallengeNotFound    = errors.New("验证流程不存在或已过期")
	ErrVerificationRequired = errors.New("该操作需要先完成验证码验证")
	ErrNoEmailBound         = errors.New("该账号未绑定邮箱，无法接收验证码")
)

// VerificationService 管理敏感操作前的一次性验证码流程。
// 每次上传流程分配独立的 challenge，以 UUID 索引保存在内存中，
// 验证通过后持有一次性放行许可，流程结束或过期即回收。
type VerificationService struct {
	mu         sync.Mutex
	challenges map[string]*challengeEntry

	userRepo  *repository.UserRepository
	mailQueue *queue.Queue
	cfg       *config.Config
}

type challengeEntry struct {
	userID    int64
	challenge *otp.Challenge
}

func NewVerificationService(userRepo *repository.UserRepository, mailQueue *queue.Queue, cfg *config.Config) *VerificationService {
	return &VerificationService{
		challenges: make(map[string]*challengeEntry),
		userRepo:   userRepo,
		mailQueue:  mailQueue,
		cfg:        cfg,
	}
}

// Issue 为用户开启一个验证流程：生成验证码并投递到邮件队列，返回流程 ID。
// 同一用户重复调用会得到新的独立流程，旧流程的验证码不受影响，等过期回收。
func (s *VerificationService) Issue(ctx context.Context, userID int64) (challengeID string, expiresAt time.Time, err error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", time.Time{}, err
	}
	// GitHub 登录创建的账号可能没有邮箱
	if user.Email == nil {
		return "", time.Time{}, ErrNoEmailBound
	}

	expiry := time.Duration(s.cfg.Verification.ExpireMinutes) * time.Minute
	challenge := otp.NewChallenge(expiry)
	code, err := challenge.Issue(time.Now(), s.cfg.Verification.CodeLength)
	if err != nil {
		return "", time.Time{}, err
	}

	challengeID = uuid.NewString()
	s.mu.Lock()
	s.challenges[challengeID] = &challengeEntry{userID: userID, challenge: challenge}
	s.mu.Unlock()

	err = s.mailQueue.Push(ctx, &queue.MailMessage{
		Type:   queue.MailVerificationCode,
		To:     *user.Email,
		UserID: userID,
		Code:   code,
	})
	if err != nil {
		// 投递失败的流程没有意义，立即回收
		s.mu.Lock()
		delete(s.challenges, challengeID)
		s.mu.Unlock()
		return "", time.Time{}, err
	}

	return challengeID, challenge.ExpiresAt(), nil
}

// Verify 校验候选验证码。过期的流程直接删除，需要重新 Issue；
// 输错保持可重试，不消耗流程。
func (s *VerificationService) Verify(userID int64, challengeID, candidate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.challenges[challengeID]
	if !ok || entry.userID != userID {
		return ErrChallengeNotFound
	}

	err := entry.challenge.Verify(candidate, time.Now())
	if errors.Is(err, otp.ErrChallengeExpired) {
		delete(s.challenges, challengeID)
	}
	return err
}

// ConsumePermit 消费已验证流程的一次性放行许可。
// 只有 Verify 成功后的第一次调用能通过，成功后流程即被移除。
func (s *VerificationService) ConsumePermit(userID int64, challengeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.challenges[challengeID]
	if !ok || entry.userID != userID {
		return ErrVerificationRequired
	}

	if err := entry.challenge.Consume(); err != nil {
		return ErrVerificationRequired
	}

	delete(s.challenges, challengeID)
	return nil
}

// SweepExpired 清理过期及已废弃的验证流程，由定时任务周期调用。
// 返回清理的条数。
func (s *VerificationService) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.challenges {
		expiresAt := entry.challenge.ExpiresAt()
		if !expiresAt.IsZero() && now.After(expiresAt) {
			delete(s.challenges, id)
			removed++
		}
	}
	return removed
}

// PendingCount 当前在途流程数量
func (s *VerificationService) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}
