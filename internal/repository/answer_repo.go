package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/model"
)

type AnswerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create 创建回答
func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *AnswerRepository) GetByID(id int64) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.Where("id = ?", id).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// IncrementUpvotes 原子加一并返回最新计数。
// 自增在数据库端完成，并发点赞不会丢失；目标不存在返回 ErrRecordNotFound。
func (r *AnswerRepository) IncrementUpvotes(id int64) (int, error) {
	result := r.db.Model(&model.Answer{}).Where("id = ?", id).
		Update("upvotes", gorm.Expr("upvotes + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var upvotes int
	err := r.db.Model(&model.Answer{}).Select("upvotes").Where("id = ?", id).
		Scan(&upvotes).Error
	return upvotes, err
}

// Delete 删除回答
func (r *AnswerRepository) Delete(id int64) error {
	return r.db.Delete(&model.Answer{}, id).Error
}
