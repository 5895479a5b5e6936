package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/model"
)

type LoginHistoryRepository struct {
	db *gorm.DB
}

func NewLoginHistoryRepository(db *gorm.DB) *LoginHistoryRepository {
	return &LoginHistoryRepository{db: db}
}

// Create 追加登录记录
func (r *LoginHistoryRepository) Create(entry *model.LoginHistory) error {
	return r.db.Create(entry).Error
}

// ListByUser 查询用户登录历史，按时间倒序
func (r *LoginHistoryRepository) ListByUser(userID int64, limit int) ([]*model.LoginHistory, error) {
	var entries []*model.LoginHistory
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// DeleteBefore 清理指定时间之前的登录记录，返回删除条数
func (r *LoginHistoryRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.LoginHistory{})
	return result.RowsAffected, result.Error
}
