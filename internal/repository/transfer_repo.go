package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/model"
)

// ErrBalanceChanged 条件扣减未命中：余额在检查后被并发转账消耗
var ErrBalanceChanged = errors.New("余额不足或已被并发修改")

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Execute 在单个数据库事务内完成扣减、入账和流水记录，三者要么全部生效要么全部回滚。
// 扣减是条件 UPDATE（points >= required），并发转账各自检查过期余额时最多一个能通过。
func (r *TransferRepository) Execute(fromID, toID int64, amount, required int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ? AND points >= ?", fromID, required).
			Update("points", gorm.Expr("points - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBalanceChanged
		}

		err := tx.Model(&model.User{}).Where("id = ?", toID).
			Update("points", gorm.Expr("points + ?", amount)).Error
		if err != nil {
			return err
		}

		return tx.Create(&model.PointsTransfer{
			FromUserID: fromID,
			ToUserID:   toID,
			Amount:     amount,
		}).Error
	})
}

// ListByUser 查询与用户相关的转账流水（转出或转入）
func (r *TransferRepository) ListByUser(userID int64) ([]*model.PointsTransfer, error) {
	var transfers []*model.PointsTransfer
	err := r.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").Find(&transfers).Error
	return transfers, err
}

// CountByUser 统计用户转出的流水条数
func (r *TransferRepository) CountByUser(fromID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.PointsTransfer{}).
		Where("from_user_id = ?", fromID).Count(&count).Error
	return count, err
}
