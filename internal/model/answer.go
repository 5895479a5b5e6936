package model

import (
	"time"
)

type Answer struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	QuestionID int64     `gorm:"not null;index" json:"question_id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Upvotes    int       `gorm:"not null;default:0" json:"upvotes"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
