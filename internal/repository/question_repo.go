package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/qa_board_server/internal/model"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create 创建问题
func (r *QuestionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *QuestionRepository) GetByID(id int64) (*model.Question, error) {
	var question model.Question
	err := r.db.Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListWithAnswers 拉取完整问题列表：问题按创建时间倒序，
// 回答按创建时间正序，作者展示字段一并带出。
// 问题已被删除的回答不会出现在结果中。
func (r *QuestionRepository) ListWithAnswers() ([]*model.Question, error) {
	var questions []*model.Question
	err := r.db.
		Preload("User").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC")
		}).
		Preload("Answers.User").
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

// Delete 删除问题（上游管理操作，回答的清理交给协调器的下一次重载）
func (r *QuestionRepository) Delete(id int64) error {
	return r.db.Delete(&model.Question{}, id).Error
}
