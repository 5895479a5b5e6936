package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/config"
	"github.com/qs3c/qa_board_server/internal/model"
	"github.com/qs3c/qa_board_server/internal/repository"
)

var (
	ErrAmountNotPositive    = errors.New("转赠数量必须为正数")
	ErrSelfTransfer         = errors.New("不能转赠给自己")
	ErrRecipientNotFound    = errors.New("收款用户不存在")
	ErrInsufficientStanding = errors.New("积分低于转赠门槛")
	ErrInsufficientAmount   = errors.New("积分余额不足")
)

// PointsService 积分转赠。前置检查给出确切的拒绝原因，
// 真正的扣减在仓储层事务内以条件 UPDATE 完成，并发下绝不超扣。
type PointsService struct {
	userRepo     *repository.UserRepository
	transferRepo *repository.TransferRepository
	cfg          *config.Config
}

func NewPointsService(userRepo *repository.UserRepository, transferRepo *repository.TransferRepository, cfg *config.Config) *PointsService {
	return &PointsService{
		userRepo:     userRepo,
		transferRepo: transferRepo,
		cfg:          cfg,
	}
}

// Transfer 向指定邮箱的用户转赠积分，返回转出方的剩余积分。
// 拒绝原因按顺序判定：数量非正、收款人不存在、自我转赠、
// 余额低于门槛、余额不足转赠数量。
func (s *PointsService) Transfer(fromID int64, toEmail string, amount int) (remaining int, err error) {
	if amount <= 0 {
		return 0, ErrAmountNotPositive
	}

	recipient, err := s.userRepo.GetByEmail(toEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRecipientNotFound
		}
		return 0, err
	}
	if recipient.ID == fromID {
		return 0, ErrSelfTransfer
	}

	sender, err := s.userRepo.GetByID(fromID)
	if err != nil {
		return 0, err
	}

	minStanding := s.cfg.Points.MinStandingBalance
	if err := classifyBalance(sender.Points, amount, minStanding); err != nil {
		return 0, err
	}

	required := amount
	if minStanding > required {
		required = minStanding
	}

	err = s.transferRepo.Execute(fromID, recipient.ID, amount, required)
	if errors.Is(err, repository.ErrBalanceChanged) {
		// 余额在检查后被并发消耗，重读后给出确切原因
		sender, readErr := s.userRepo.GetByID(fromID)
		if readErr != nil {
			return 0, readErr
		}
		if balanceErr := classifyBalance(sender.Points, amount, minStanding); balanceErr != nil {
			return sender.Points, balanceErr
		}
		return sender.Points, ErrInsufficientAmount
	}
	if err != nil {
		return 0, err
	}

	sender, err = s.userRepo.GetByID(fromID)
	if err != nil {
		return 0, err
	}
	return sender.Points, nil
}

func classifyBalance(balance, amount, minStanding int) error {
	if balance < minStanding {
		return ErrInsufficientStanding
	}
	if balance < amount {
		return ErrInsufficientAmount
	}
	return nil
}

// History 查询用户的转账流水
func (s *PointsService) History(userID int64) ([]*model.PointsTransfer, error) {
	return s.transferRepo.ListByUser(userID)
}
