package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/model"
	"github.com/qs3c/qa_board_server/internal/pkg/queue"
	"github.com/qs3c/qa_board_server/internal/repository"
)

var ErrResetUserNotFound = errors.New("账号不存在")

// RateLimitedError 限流拒绝，携带距离下次允许的等待时长
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("重置过于频繁，请 %s 后再试", e.RetryAfter.Round(time.Minute))
}

// PasswordResetService 密码重置：滚动窗口限流 + 随机密码生成与投递。
// 限流状态存在用户行上，窗口滚动和计数消耗都是条件 UPDATE，
// 并发请求不可能同时通过；存储出错时直接拒绝，绝不默认放行。
type PasswordResetService struct {
	userRepo  *repository.UserRepository
	mailQueue *queue.Queue
	cfg       *config.Config
}

func NewPasswordResetService(userRepo *repository.UserRepository, mailQueue *queue.Queue, cfg *config.Config) *PasswordResetService {
	return &PasswordResetService{
		userRepo:  userRepo,
		mailQueue: mailQueue,
		cfg:       cfg,
	}
}

// RequestReset 按邮箱或手机号发起密码重置。
// 通过限流后生成新密码写入用户行，并投递通知邮件。
func (s *PasswordResetService) RequestReset(ctx context.Context, email, phone string) error {
	user, err := s.lookupUser(email, phone)
	if err != nil {
		return err
	}
	// 没有邮箱就无处投递新密码，按账号不存在处理
	if user.Email == nil {
		return ErrResetUserNotFound
	}

	if err := s.TryConsume(user.ID, time.Now()); err != nil {
		return err
	}

	password, err := GeneratePassword(12)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"password_hash": string(hash),
	}); err != nil {
		return err
	}

	return s.mailQueue.Push(ctx, &queue.MailMessage{
		Type:     queue.MailGeneratedPassword,
		To:       *user.Email,
		UserID:   user.ID,
		Password: password,
	})
}

// TryConsume 消耗一次重置额度。窗口已过先原子清零计数再消耗；
// 消耗本身是条件 UPDATE，两个并发请求最多一个通过。
func (s *PasswordResetService) TryConsume(userID int64, now time.Time) error {
	period := time.Duration(s.cfg.Reset.PeriodHours) * time.Hour

	if _, err := s.userRepo.RolloverResetWindow(userID, now, now.Add(-period)); err != nil {
		return err
	}

	ok, err := s.userRepo.ConsumePasswordReset(userID, s.cfg.Reset.Limit)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	return &RateLimitedError{RetryAfter: s.retryAfter(userID, now, period)}
}

func (s *PasswordResetService) retryAfter(userID int64, now time.Time, period time.Duration) time.Duration {
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user.PasswordResetAt == nil {
		return period
	}
	remaining := user.PasswordResetAt.Add(period).Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (s *PasswordResetService) lookupUser(email, phone string) (*model.User, error) {
	if email != "" {
		user, err := s.userRepo.GetByEmail(email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetUserNotFound
		}
		return user, err
	}
	if phone != "" {
		user, err := s.userRepo.GetByPhone(phone)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetUserNotFound
		}
		return user, err
	}
	return nil, ErrResetUserNotFound
}

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	allLetters   = upperLetters + lowerLetters
)

// GeneratePassword 生成纯字母随机密码，首位大写次位小写
func GeneratePassword(length int) (string, error) {
	if length < 2 {
		return "", errors.New("密码长度至少为 2")
	}

	pick := func(charset string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return 0, err
		}
		return charset[n.Int64()], nil
	}

	password := make([]byte, length)
	var err error
	if password[0], err = pick(upperLetters); err != nil {
		return "", err
	}
	if password[1], err = pick(lowerLetters); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if password[i], err = pick(allLetters); err != nil {
			return "", err
		}
	}
	return string(password), nil
}
