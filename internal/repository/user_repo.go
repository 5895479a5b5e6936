package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByPhone(phone string) (*model.User, error) {
	var user model.User
	err := r.db.Where("phone = ?", phone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByGithubID(githubID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("github_id = ?", githubID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateLanguage 更新界面语言
func (r *UserRepository) UpdateLanguage(id int64, language string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("preferred_language", language).Error
}

// RolloverResetWindow 重置限流窗口：计数清零并把窗口起点压到 now。
// 带条件更新，窗口未过期时不生效，并发滚动只有一个会成功。
func (r *UserRepository) RolloverResetWindow(id int64, now, cutoff time.Time) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND (password_reset_at IS NULL OR password_reset_at <= ?)", id, cutoff).
		Updates(map[string]interface{}{
			"password_reset_count": 0,
			"password_reset_at":    now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ConsumePasswordReset 原子消费一次重置额度。
// 读取-判断-递增合并为单条条件 UPDATE，两个并发调用不可能都成功。
func (r *UserRepository) ConsumePasswordReset(id int64, limit int) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND password_reset_count < ?", id, limit).
		Update("password_reset_count", gorm.Expr("password_reset_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
